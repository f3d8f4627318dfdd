package dto

type ReconcileResponse struct {
	Pending  int `json:"pending"`
	Repaired int `json:"repaired"`
}
