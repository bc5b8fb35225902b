package dto

// SyncConflict 记录一次排空过程中被放弃或失败的条目
type SyncConflict struct {
	EntryID  int64  `json:"entryId"`
	Table    string `json:"table"`
	Op       string `json:"op"`
	EntityID string `json:"entityId"`
	Error    string `json:"error,omitempty"`
}

// SyncResult 一次排空的结果统计
type SyncResult struct {
	// Success 成功回放并出队的条目数
	Success int `json:"success"`
	// Conflicts 按远端优先策略放弃的条目
	Conflicts []*SyncConflict `json:"conflicts,omitempty"`
}
