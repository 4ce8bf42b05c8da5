package model

// Wire types for the external plan-generation service. The service owns the
// planning algorithm; this side only builds the request payload and consumes
// the preview shape it returns.

// TimeRange is an "HH:MM" interval within a day
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Availability describes when the user can work on the plan
type Availability struct {
	Days      []int     `json:"days"` // 0 = Sunday
	TimeRange TimeRange `json:"timeRange"`
}

// Period is how long the generated plan should run
type Period struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"` // "weeks" or "months"
}

// PlanRequest is the payload sent to the plan-generation service
type PlanRequest struct {
	HasExistingPlan           bool         `json:"hasExistingPlan"`
	Availability              Availability `json:"availability"`
	Area                      string       `json:"area,omitempty"`
	Objective                 string       `json:"objective,omitempty"`
	ExistingPlan              string       `json:"existingPlan,omitempty"`
	Period                    *Period      `json:"period,omitempty"`
	UserID                    string       `json:"user_id,omitempty"`
	DistributeTasksAcrossDays bool         `json:"distributeTasksAcrossDays,omitempty"`
}

// PlanResponse is the service's reply envelope
type PlanResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Preview *PlanPreview `json:"preview,omitempty"`
}

// PlanPreview is a generated plan awaiting user acceptance. Nothing is
// persisted until the preview is explicitly accepted.
type PlanPreview struct {
	Objective PlanObjective `json:"objective"`
	Tasks     []PlanTask    `json:"tasks"`
}

// PlanObjective describes the objective the plan was generated for
type PlanObjective struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// PlanTask is one recurring task proposal inside a preview
type PlanTask struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Planning    PlanPlanning `json:"planning"`
	Schedule    PlanSchedule `json:"schedule"`
}

// PlanPlanning carries the service's minute budgets for a task
type PlanPlanning struct {
	TotalPlannedMinutes   int `json:"totalPlannedMinutes"`
	SessionPlannedMinutes int `json:"sessionPlannedMinutes"`
}

// PlanSchedule places a task in time. StartDate/EndDate, when present,
// override the rule's dates — the service sends them when it has corrected
// or narrowed the range.
type PlanSchedule struct {
	Time      string           `json:"time"` // "HH:MM"
	StartDate string           `json:"startDate,omitempty"`
	EndDate   string           `json:"endDate,omitempty"`
	Rule      PlanScheduleRule `json:"rule"`
}

// PlanScheduleRule is the recurrence part of a task schedule
type PlanScheduleRule struct {
	DaysOfWeek []int  `json:"daysOfWeek"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}
