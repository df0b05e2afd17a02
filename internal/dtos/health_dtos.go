package dtos

type HealthCheckResponse struct {
	Status   string `json:"status"`
	Upstream string `json:"upstream"`
}
