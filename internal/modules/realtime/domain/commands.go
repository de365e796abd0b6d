package domain

// SetFilterCommand changes one filter control of a board.
type SetFilterCommand struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// SetSearchCommand replaces the board's name search.
type SetSearchCommand struct {
	Query string `json:"query"`
}

// SetSortCommand reorders the board's baseline.
type SetSortCommand struct {
	Key string `json:"key"`
}
