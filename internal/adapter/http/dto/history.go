package dto

// HistoryLogItem keeps the client's field names: prevStatus/status and
// prevPriority/priority pairs, with the task title nested when the task still
// exists.
type HistoryLogItem struct {
	ID           uint64            `json:"id"`
	TaskID       uint64            `json:"taskId"`
	Date         string            `json:"date"`
	Task         *HistoryTaskBrief `json:"task,omitempty"`
	PrevStatus   string            `json:"prevStatus"`
	Status       string            `json:"status"`
	PrevPriority string            `json:"prevPriority"`
	Priority     string            `json:"priority"`
}

type HistoryTaskBrief struct {
	Title string `json:"title"`
}
