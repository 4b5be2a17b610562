package models

import (
	"time"

	"microgrid-env/internal/env"
	"microgrid-env/internal/episode"
)

// SessionResponse describes an open session.
type SessionResponse struct {
	ID              string    `json:"id"`
	Layout          string    `json:"layout"`
	NActions        int       `json:"n_actions"`
	InputDimensions [][]int   `json:"input_dimensions"`
	CreatedAt       time.Time `json:"created_at"`
}

// ResetResponse carries the initial observation of a fresh episode.
type ResetResponse struct {
	Mode          string          `json:"mode"`
	Observation   env.Observation `json:"observation"`
	EpisodeLength int             `json:"episode_length"`
}

// StepResponse carries one transition's outcome.
type StepResponse struct {
	Reward      float64         `json:"reward"`
	Observation env.Observation `json:"observation"`
	Cursor      int             `json:"cursor"`
	Done        bool            `json:"done"`
}

// ObservationResponse is the current observation snapshot.
type ObservationResponse struct {
	Observation env.Observation `json:"observation"`
	Cursor      int             `json:"cursor"`
}

// EpisodeSummary aggregates a finished episode.
type EpisodeSummary struct {
	Mode               string  `json:"mode"`
	Policy             string  `json:"policy"`
	Steps              int     `json:"steps"`
	TotalReward        float64 `json:"total_reward"`
	FinalStorageLevel  float64 `json:"final_storage_level"`
	FinalLongTermLevel float64 `json:"final_long_term_level"`
}

// TrajectoryRow is one step of an episode in a response body.
type TrajectoryRow struct {
	Step         int     `json:"step"`
	Action       string  `json:"action"`
	Reward       float64 `json:"reward"`
	CumReward    float64 `json:"cum_reward"`
	StorageLevel float64 `json:"storage_level"`
	Consumption  float64 `json:"consumption"`
	Production   float64 `json:"production"`
}

// EpisodeResponse is the result of POST /episodes.
type EpisodeResponse struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	Summary    EpisodeSummary  `json:"summary"`
	Trajectory []TrajectoryRow `json:"trajectory,omitempty"`
}

// TrajectoryRows converts an episode result for a response body.
func TrajectoryRows(res *episode.Result) []TrajectoryRow {
	rows := make([]TrajectoryRow, len(res.Trajectory))
	for i, r := range res.Trajectory {
		rows[i] = TrajectoryRow{
			Step:         r.Step,
			Action:       r.Action.String(),
			Reward:       r.Reward,
			CumReward:    r.CumReward,
			StorageLevel: r.StorageLevel,
			Consumption:  r.Consumption,
			Production:   r.Production,
		}
	}
	return rows
}

// SummaryOf builds the summary block for an episode result.
func SummaryOf(res *episode.Result) EpisodeSummary {
	return EpisodeSummary{
		Mode:               res.Mode.String(),
		Policy:             res.Policy,
		Steps:              len(res.Trajectory),
		TotalReward:        res.TotalReward,
		FinalStorageLevel:  res.FinalStorageLevel,
		FinalLongTermLevel: res.FinalLongTermLevel,
	}
}
