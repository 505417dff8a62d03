package reconcile

import (
	"sort"
	"strings"
)

// locationAbbreviations abreviaturas de ubicaciones conocidas, solo para
// display. Nombres desconocidos pasan sin cambios.
var locationAbbreviations = map[string]string{
	"Direct Shipment Warehouse": "DSW",
	"TIN WAN":                   "TW",
	"KERRY 1":                   "K1",
	"Hong Kong Ice":             "HKIce",
	"MACAU":                     "澳",
}

// AbbreviateLocation devuelve la abreviatura de una ubicación conocida,
// o el nombre original si no está en la tabla.
func AbbreviateLocation(name string) string {
	if abbr, ok := locationAbbreviations[name]; ok {
		return abbr
	}
	return name
}

// JoinLocations abrevia, de-duplica y ordena una lista de ubicaciones y las
// une con ", " para la columna Location de la vista agregada.
func JoinLocations(names []string) string {
	seen := make(map[string]struct{}, len(names))
	abbrs := make([]string, 0, len(names))
	for _, n := range names {
		a := AbbreviateLocation(n)
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		abbrs = append(abbrs, a)
	}
	sort.Strings(abbrs)
	return strings.Join(abbrs, ", ")
}
