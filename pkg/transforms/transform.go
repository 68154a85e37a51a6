package transforms

import (
	"reflect"

	"github.com/rs/zerolog/log"
)

// Definition overrides fields of any record whose Match fields all equal the given values
type Definition struct {
	Match map[string]string `yaml:"match"`
	Data  map[string]string `yaml:"data"`
}

func (d *Definition) matches(inputValue reflect.Value) bool {
	for key, value := range d.Match {
		field := inputValue.FieldByName(key)
		if !field.IsValid() || field.Kind() != reflect.String || field.String() != value {
			return false
		}
	}

	return true
}

func (d *Definition) apply(inputValue reflect.Value) {
	for key, value := range d.Data {
		field := inputValue.FieldByName(key)
		if !field.IsValid() || !field.CanSet() || field.Kind() != reflect.String {
			log.Debug().Str("field", key).Str("type", inputValue.Type().String()).Msg("Transform cannot set field")
			continue
		}

		field.SetString(value)
	}
}

// Transform applies every matching definition in order to input, a struct pointer or a slice of them.
// Returns how many records were changed.
func Transform(definitions []Definition, input interface{}) int {
	if len(definitions) == 0 {
		return 0
	}

	inputValueOf := reflect.ValueOf(input)

	if inputValueOf.Kind() == reflect.Slice {
		changed := 0
		for i := 0; i < inputValueOf.Len(); i++ {
			if transformValue(definitions, inputValueOf.Index(i)) {
				changed++
			}
		}
		return changed
	}

	if transformValue(definitions, inputValueOf) {
		return 1
	}
	return 0
}

func transformValue(definitions []Definition, inputValueOf reflect.Value) bool {
	if inputValueOf.Kind() != reflect.Pointer || inputValueOf.IsNil() {
		return false
	}

	inputValue := inputValueOf.Elem()
	if inputValue.Kind() != reflect.Struct {
		return false
	}

	changed := false
	for i := range definitions {
		if definitions[i].matches(inputValue) {
			definitions[i].apply(inputValue)
			changed = true
		}
	}

	return changed
}
