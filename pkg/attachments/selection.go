package attachments

// Reserved dataTypeIds values.
const (
	IncludeAll   = "include-all"
	CurrentTask  = "current-task"
	RefDataAsPDF = "ref-data-as-pdf"
)

// IsSentinel reports whether id is one of the reserved values.
func IsSentinel(id string) bool {
	switch id {
	case IncludeAll, CurrentTask, RefDataAsPDF:
		return true
	default:
		return false
	}
}

// Available holds the data type ids an attachment list may reference.
// CurrentTaskIDs covers the task the layout set belongs to; AllTaskIDs covers
// every task up to and including it.
type Available struct {
	CurrentTaskIDs []string `json:"currentTask" yaml:"currentTask"`
	AllTaskIDs     []string `json:"allTasks" yaml:"allTasks"`
}

// Scope returns the ids applicable for the given current-task flag, without
// sentinels or duplicates.
func (a Available) Scope(currentTask bool) []string {
	if currentTask {
		return normalizeIDs(a.CurrentTaskIDs)
	}
	return normalizeIDs(a.AllTaskIDs)
}

// Selection is the editable form of an attachment list configuration.
// DataTypes never contains a sentinel.
type Selection struct {
	CurrentTask bool     `json:"currentTask"`
	IncludePDF  bool     `json:"includePdf"`
	DataTypes   []string `json:"selectedDataTypes"`
}

// ToInternal decodes persisted dataTypeIds into a Selection. Ids that are not
// part of the applicable scope are dropped. When no id in scope is listed the
// selection widens to the whole scope, unless the list carries the bare PDF
// marker, which means "PDF only".
func ToInternal(available Available, persisted []string) Selection {
	includePDF := contains(persisted, RefDataAsPDF) || contains(persisted, IncludeAll)
	currentTask := contains(persisted, CurrentTask)
	scope := available.Scope(currentTask)

	explicit := intersect(persisted, scope)

	selected := explicit
	if len(explicit) == len(scope) || (len(explicit) == 0 && !contains(persisted, RefDataAsPDF)) {
		selected = scope
	}

	return Selection{
		CurrentTask: currentTask,
		IncludePDF:  includePDF,
		DataTypes:   selected,
	}
}

// ToExternal encodes s into its compact persisted form. A selection covering
// the whole scope together with the PDF collapses into include-all; anything
// else is written out explicitly followed by the applicable sentinels.
func ToExternal(available Available, s Selection) []string {
	scope := available.Scope(s.CurrentTask)
	selected := intersect(s.DataTypes, scope)
	collapse := s.IncludePDF && len(selected) == len(scope)

	out := make([]string, 0, len(selected)+2)
	if collapse {
		out = append(out, IncludeAll)
	} else {
		out = append(out, selected...)
	}
	if s.CurrentTask {
		out = append(out, CurrentTask)
	}
	if s.IncludePDF && !collapse {
		out = append(out, RefDataAsPDF)
	}
	return out
}

// intersect returns the ids of list that appear in scope, in list order and
// without duplicates. The result is never nil.
func intersect(list, scope []string) []string {
	allowed := make(map[string]struct{}, len(scope))
	for _, id := range scope {
		allowed[id] = struct{}{}
	}
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, id := range list {
		if _, ok := allowed[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" || IsSentinel(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
