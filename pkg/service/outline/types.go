package outline

import "encoding/json"

// Wire types for the directory API. All endpoints are POST with a JSON
// body and return an envelope whose "data" field is either a flat list or
// an object holding the list under a type-specific key; both shapes occur
// in the wild and both are tolerated.

type envelope struct {
	OK         bool            `json:"ok"`
	Success    *bool           `json:"success,omitempty"`
	Error      string          `json:"error,omitempty"`
	Data       json.RawMessage `json:"data"`
	Pagination *pagination     `json:"pagination"`
}

type pagination struct {
	Total    int    `json:"total"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
	NextPath string `json:"nextPath"`
}

type wireUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type wireGroup struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"memberCount"`
}

type wireMembership struct {
	User wireUser `json:"user"`
}

// unwrapList decodes an envelope data field that is either a flat JSON
// list or an object carrying the list under the given key.
func unwrapList[T any](data json.RawMessage, key string) ([]T, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var flat []T
	if err := json.Unmarshal(data, &flat); err == nil {
		return flat, nil
	}

	var nested map[string]json.RawMessage
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, err
	}

	raw, ok := nested[key]
	if !ok {
		return nil, nil
	}

	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}
