package attachments

// Task lists the data types produced or consumed by one process task, in the
// order the process visits tasks.
type Task struct {
	ID        string   `json:"id" yaml:"id"`
	DataTypes []string `json:"dataTypes" yaml:"dataTypes"`
}

// ScopeFor computes the available data types for an attachment list placed in
// the layout set of currentTaskID. AllTaskIDs accumulates every task up to and
// including the current one. When currentTaskID is not among tasks, the
// current scope is empty and every task contributes to AllTaskIDs.
func ScopeFor(tasks []Task, currentTaskID string) Available {
	var current, all []string
	for _, task := range tasks {
		all = append(all, task.DataTypes...)
		if task.ID == currentTaskID {
			current = task.DataTypes
			break
		}
	}
	return Available{
		CurrentTaskIDs: normalizeIDs(current),
		AllTaskIDs:     normalizeIDs(all),
	}
}

// Stale returns the persisted ids that are neither sentinels nor part of any
// scope in available. ToInternal drops them silently; lint reports them.
func Stale(available Available, persisted []string) []string {
	known := make(map[string]struct{})
	for _, id := range available.AllTaskIDs {
		known[id] = struct{}{}
	}
	for _, id := range available.CurrentTaskIDs {
		known[id] = struct{}{}
	}
	var out []string
	for _, id := range persisted {
		if IsSentinel(id) {
			continue
		}
		if _, ok := known[id]; ok {
			continue
		}
		out = append(out, id)
	}
	return out
}
