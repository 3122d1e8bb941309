package dto

import "time"

type PlanResponse struct {
	RunID        string  `json:"run_id"`
	Seed         int64   `json:"seed"`
	Restarts     int     `json:"restarts"`
	TotalCost    float64 `json:"total_cost"`
	DistanceCost float64 `json:"distance_cost"`
	Drivers      int     `json:"drivers"`
	Infeasible   int     `json:"infeasible_routes"`
	Routes       [][]int `json:"routes"`
	Iterations   int     `json:"iterations"`
	Evaluations  int     `json:"evaluations"`
	DurationMS   int64   `json:"duration_ms"`
	Cached       bool    `json:"cached"`
}

type RunResponse struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	Seed        int64     `json:"seed"`
	Restarts    int       `json:"restarts"`
	LoadCount   int       `json:"load_count"`
	TotalCost   float64   `json:"total_cost"`
	Drivers     int       `json:"drivers"`
	Routes      [][]int   `json:"routes"`
	Iterations  int       `json:"iterations"`
	Evaluations int       `json:"evaluations"`
	StartedAt   time.Time `json:"started_at"`
	DurationMS  int64     `json:"duration_ms"`
}

type ListRunsResponse struct {
	Runs []RunResponse `json:"runs"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	RunHistory bool   `json:"run_history"`
	PlanCache  bool   `json:"plan_cache"`
}
