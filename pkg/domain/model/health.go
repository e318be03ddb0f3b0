package model

// HealthStatus represents the health check status
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// ConnectivityReport is the result of checking every upstream API
type ConnectivityReport struct {
	GitHub  string `json:"github"`
	LLM     string `json:"groq"`
	ClickUp string `json:"clickup"`
}
