package libs

import (
	"fmt"
	"sort"
	"strings"
)

// Operation identifies one generic resource operation.
type Operation string

const (
	OpList      Operation = "list"
	OpGet       Operation = "get"
	OpCreate    Operation = "create"
	OpUpdate    Operation = "update"
	OpDelete    Operation = "delete"
	OpFindTerms Operation = "find-terms"
)

// ResourceDescriptor is one static registry entry: the canonical resource
// name, its collection path, whether its representation carries the
// identity-keyed terms array, and which operations it supports.
type ResourceDescriptor struct {
	CanonicalName string
	Path          string
	TermManaged   bool
	operations    map[Operation]bool
}

// Supports reports whether the resource offers the given operation.
func (d *ResourceDescriptor) Supports(op Operation) bool {
	return d.operations[op]
}

func crudOps() map[Operation]bool {
	return map[Operation]bool{
		OpList:   true,
		OpGet:    true,
		OpCreate: true,
		OpUpdate: true,
		OpDelete: true,
	}
}

func termOps() map[Operation]bool {
	ops := crudOps()
	ops[OpFindTerms] = true

	return ops
}

func descriptor(name string, termManaged bool) *ResourceDescriptor {
	ops := crudOps()
	if termManaged {
		ops = termOps()
	}

	return &ResourceDescriptor{
		CanonicalName: name,
		Path:          "/" + name,
		TermManaged:   termManaged,
		operations:    ops,
	}
}

// descriptors is the static resource table. Data, not logic: adding a
// resource means adding a row here and its aliases below.
var descriptors = map[string]*ResourceDescriptor{
	"departments":      descriptor("departments", true),
	"professions":      descriptor("professions", true),
	"statuses":         descriptor("statuses", false),
	"languages":        descriptor("languages", true),
	"tool-types":       descriptor("tool-types", false),
	"tools":            descriptor("tools", false),
	"industries":       descriptor("industries", true),
	"sub-industries":   descriptor("sub-industries", true),
	"countries":        descriptor("countries", true),
	"cities":           descriptor("cities", true),
	"actions":          descriptor("actions", true),
	"objects":          descriptor("objects", true),
	"responsibilities": descriptor("responsibilities", true),
	"formats":          descriptor("formats", false),
	"priorities":       descriptor("priorities", false),
	"shifts":           descriptor("shifts", false),
	"currencies":       descriptor("currencies", false),
	"rates":            descriptor("rates", false),
	"levels":           descriptor("levels", true),
}

// aliases maps human-readable resource names, in several languages, onto
// canonical names. Lookup is case-insensitive and whitespace-trimming, so
// every key here is lowercase.
var aliases = map[string]string{
	"department": "departments", "מחלקה": "departments", "מחלקות": "departments",
	"отдел": "departments", "отделы": "departments",

	"profession": "professions", "מקצוע": "professions", "מקצועות": "professions",
	"профессия": "professions", "профессии": "professions",

	"status": "statuses", "סטטוס": "statuses", "סטטוסים": "statuses",
	"статус": "statuses", "статусы": "statuses",

	"language": "languages", "שפה": "languages", "שפות": "languages",
	"язык": "languages", "языки": "languages",

	"tool-type": "tool-types", "tool type": "tool-types", "tool types": "tool-types",
	"סוג כלי": "tool-types", "סוגי כלים": "tool-types",
	"тип инструмента": "tool-types", "типы инструментов": "tool-types",

	"tool": "tools", "כלי": "tools", "כלים": "tools",
	"инструмент": "tools", "инструменты": "tools",

	"industry": "industries", "תעשייה": "industries", "תעשיות": "industries",
	"отрасль": "industries", "отрасли": "industries",

	"sub-industry": "sub-industries", "subindustry": "sub-industries",
	"subindustries": "sub-industries", "sub industry": "sub-industries",
	"תת-תעשייה": "sub-industries", "подотрасль": "sub-industries", "подотрасли": "sub-industries",

	"country": "countries", "מדינה": "countries", "מדינות": "countries",
	"страна": "countries", "страны": "countries",

	"city": "cities", "עיר": "cities", "ערים": "cities",
	"город": "cities", "города": "cities",

	"action": "actions", "פעולה": "actions", "פעולות": "actions",
	"действие": "actions", "действия": "actions",

	"object": "objects", "אובייקט": "objects", "אובייקטים": "objects",
	"объект": "objects", "объекты": "objects",

	"responsibility": "responsibilities", "אחריות": "responsibilities",
	"ответственность": "responsibilities", "обязанности": "responsibilities",

	"format": "formats", "פורמט": "formats", "פורמטים": "formats",
	"формат": "formats", "форматы": "formats",

	"priority": "priorities", "עדיפות": "priorities", "עדיפויות": "priorities",
	"приоритет": "priorities", "приоритеты": "priorities",

	"shift": "shifts", "משמרת": "shifts", "משמרות": "shifts",
	"смена": "shifts", "смены": "shifts",

	"currency": "currencies", "מטבע": "currencies", "מטבעות": "currencies",
	"валюта": "currencies", "валюты": "currencies",

	"rate": "rates", "תעריף": "rates", "תעריפים": "rates",
	"тариф": "rates", "тарифы": "rates",

	"level": "levels", "רמה": "levels", "רמות": "levels",
	"уровень": "levels", "уровни": "levels",
}

// CanonicalNames returns the sorted, de-duplicated list of canonical
// resource names.
func CanonicalNames() []string {
	names := make([]string, 0, len(descriptors))
	for name := range descriptors {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Resolve normalizes a resource name or alias to its canonical name.
// Unknown input fails closed with an APIError listing the valid names.
func Resolve(input string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", &APIError{
			StatusCode: 400,
			Message:    "Resource name is required",
			Context:    map[string]any{"validResources": CanonicalNames()},
			cause:      ErrEmptyResourceName,
		}
	}

	if _, ok := descriptors[normalized]; ok {
		return normalized, nil
	}

	if canonical, ok := aliases[normalized]; ok {
		return canonical, nil
	}

	return "", &APIError{
		StatusCode: 400,
		Message:    fmt.Sprintf("Unknown resource %q, valid resources: %s", input, strings.Join(CanonicalNames(), ", ")),
		Context:    map[string]any{"validResources": CanonicalNames()},
	}
}

// Describe resolves input and returns the matching descriptor.
func Describe(input string) (*ResourceDescriptor, error) {
	canonical, err := Resolve(input)
	if err != nil {
		return nil, err
	}

	return descriptors[canonical], nil
}
