package transforms

import (
	"testing"

	"github.com/travigo/viaplanner/pkg/ctdf"
)

func TestTransform(t *testing.T) {
	definitions := []Definition{
		{
			Match: map[string]string{"Identifier": "R1"},
			Data:  map[string]string{"Colour": "#123456"},
		},
		{
			Match: map[string]string{"Identifier": "R2", "Name": ""},
			Data:  map[string]string{"Name": "Shuttle", "Missing": "ignored"},
		},
		{
			Match: map[string]string{"TransportType": "Tram"},
			Data:  map[string]string{"Colour": "#00ff00"},
		},
	}

	lines := []*ctdf.Line{
		{Identifier: "R1", Name: "Red"},
		{Identifier: "R2"},
		{Identifier: "R3", TransportType: ctdf.TransportTypeTram},
		{Identifier: "R4", Name: "Untouched"},
		nil,
	}

	if changed := Transform(definitions, lines); changed != 3 {
		t.Errorf("expected 3 changed lines, got %d", changed)
	}

	if lines[0].Colour != "#123456" || lines[0].Name != "Red" {
		t.Errorf("unexpected R1 %+v", lines[0])
	}
	if lines[1].Name != "Shuttle" {
		t.Errorf("unexpected R2 %+v", lines[1])
	}
	if lines[2].Colour != "#00ff00" {
		t.Errorf("unexpected R3 %+v", lines[2])
	}
	if lines[3].Colour != "" || lines[3].Name != "Untouched" {
		t.Errorf("unexpected R4 %+v", lines[3])
	}

	single := &ctdf.Line{Identifier: "R1"}
	if Transform(definitions, single) != 1 || single.Colour != "#123456" {
		t.Errorf("expected a single record to be transformed, got %+v", single)
	}

	if Transform(nil, lines) != 0 {
		t.Error("expected no changes without definitions")
	}
}
