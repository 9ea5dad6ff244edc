package model

type Intent struct {
	Tag    string `json:"tag"`
	Random bool   `json:"random"`
}

type SelectionResult struct {
	FullID  string `json:"fullId,omitempty"`
	Message string `json:"message"`
}
