package ctdf

type TransportType string

//goland:noinspection GoUnusedConst
const (
	TransportTypeBus        TransportType = "Bus"
	TransportTypeCoach      TransportType = "Coach"
	TransportTypeTram       TransportType = "Tram"
	TransportTypeRail       TransportType = "Rail"
	TransportTypeMetro      TransportType = "Metro"
	TransportTypeFerry      TransportType = "Ferry"
	TransportTypeCableCar   TransportType = "CableCar"
	TransportTypeFunicular  TransportType = "Funicular"
	TransportTypeTrolleybus TransportType = "Trolleybus"
	TransportTypeMonorail   TransportType = "Monorail"
	TransportTypeUnknown    TransportType = "UNKNOWN"
)

var gtfsRouteTypeMapping = map[int]TransportType{
	0:   TransportTypeTram,
	1:   TransportTypeMetro,
	2:   TransportTypeRail,
	3:   TransportTypeBus,
	4:   TransportTypeFerry,
	5:   TransportTypeTram,
	6:   TransportTypeCableCar,
	7:   TransportTypeFunicular,
	11:  TransportTypeTrolleybus,
	12:  TransportTypeMonorail,
	200: TransportTypeCoach,
}

// TransportTypeFromGTFS maps both the basic and the extended GTFS route_type values
func TransportTypeFromGTFS(routeType int) TransportType {
	if transportType, exists := gtfsRouteTypeMapping[routeType]; exists {
		return transportType
	}

	// Extended route types are grouped by hundreds
	switch {
	case routeType >= 100 && routeType < 200:
		return TransportTypeRail
	case routeType >= 200 && routeType < 300:
		return TransportTypeCoach
	case routeType >= 400 && routeType < 500:
		return TransportTypeMetro
	case routeType >= 700 && routeType < 800:
		return TransportTypeBus
	case routeType >= 800 && routeType < 900:
		return TransportTypeTrolleybus
	case routeType >= 900 && routeType < 1000:
		return TransportTypeTram
	case routeType >= 1000 && routeType < 1300:
		return TransportTypeFerry
	case routeType >= 1300 && routeType < 1400:
		return TransportTypeCableCar
	case routeType >= 1400 && routeType < 1500:
		return TransportTypeFunicular
	}

	return TransportTypeUnknown
}
