package http

import (
	"time"

	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/services"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewOrder struct {
	Number string   `json:"number"`
	Client string   `json:"client"`
	Plan   []string `json:"plan"`
}

type CreatedOrder struct {
	ID string `json:"id"`
}

type StageInterval struct {
	Stage           string     `json:"stage"`
	EnteredAt       *time.Time `json:"enteredAt,omitempty"`
	ExitedAt        *time.Time `json:"exitedAt,omitempty"`
	DurationSeconds float64    `json:"durationSeconds"`
}

type Order struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	Client       string          `json:"client"`
	CurrentStage string          `json:"currentStage"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	Version      int             `json:"version"`
	Stages       []StageInterval `json:"stages"`
}

type Transition struct {
	Left            string  `json:"left"`
	Entered         string  `json:"entered,omitempty"`
	Completed       bool    `json:"completed"`
	DurationSeconds float64 `json:"durationSeconds"`
}

type BoardCard struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Client    string    `json:"client"`
	EnteredAt time.Time `json:"enteredAt"`
}

type BoardColumn struct {
	Stage  string      `json:"stage"`
	Orders []BoardCard `json:"orders"`
}

type HistoryRecord struct {
	OrderID         string    `json:"orderId"`
	Number          string    `json:"number"`
	Client          string    `json:"client"`
	Stage           string    `json:"stage"`
	Entry           time.Time `json:"entry"`
	Exit            time.Time `json:"exit"`
	DurationSeconds float64   `json:"durationSeconds"`
}

type Report struct {
	IdealMinutes int        `json:"idealMinutes"`
	Empty        bool       `json:"empty"`
	Columns      []string   `json:"columns"`
	Rows         [][]string `json:"rows"`
}

type Principal struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Stage    string `json:"stage,omitempty"`
}

type PrincipalRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Stage    string `json:"stage"`
	Secret   string `json:"secret"`
}

func toOrder(o queries.OrderResponse) Order {
	resp := Order{
		ID:           o.ID.String(),
		Number:       o.Number,
		Client:       o.Client,
		CurrentStage: o.CurrentStage.String(),
		Status:       o.Status.String(),
		CreatedAt:    o.CreatedAt,
		Version:      o.Version,
		Stages:       make([]StageInterval, 0, len(o.Stages)),
	}
	for _, s := range o.Stages {
		resp.Stages = append(resp.Stages, StageInterval{
			Stage:           s.Stage.String(),
			EnteredAt:       s.EnteredAt,
			ExitedAt:        s.ExitedAt,
			DurationSeconds: s.Duration.Seconds(),
		})
	}
	return resp
}

func toTransition(tr order.Transition) Transition {
	return Transition{
		Left:            tr.Left.String(),
		Entered:         tr.Entered.String(),
		Completed:       tr.Completed,
		DurationSeconds: tr.Record.DurationSeconds(),
	}
}

func toHistoryRecord(r history.Record) HistoryRecord {
	return HistoryRecord{
		OrderID:         r.OrderID().String(),
		Number:          r.OrderNumber(),
		Client:          r.Client(),
		Stage:           r.Stage().String(),
		Entry:           r.EntryTime(),
		Exit:            r.ExitTime(),
		DurationSeconds: r.DurationSeconds(),
	}
}

func toReport(t services.ReportTable) Report {
	return Report{
		IdealMinutes: t.IdealMinutes,
		Empty:        t.IsEmpty(),
		Columns:      t.Columns(),
		Rows:         t.Values(),
	}
}
