// internal/scenarios/explorer.go

// Package scenarios drives the engine through predefined lifecycle
// paths, one application per scenario. It exists for exploratory testing
// and demos; state progression is synchronous because simulated latency
// is a presentation concern, never an engine one.
package scenarios

import (
	"fmt"

	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/logger"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/lifecycle"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/models"
)

// Scenario names a target state to walk an application into.
type Scenario struct {
	Name        string
	Description string
	TargetState models.ApplicationState
}

// Catalog is the stock scenario set mirroring the lifecycle's decision
// branches.
var Catalog = []Scenario{
	{"happy-path", "Straight-through approval and disbursement", models.StateCompleted},
	{"rejection", "Review ends in rejection", models.StateRejected},
	{"document-issue", "Verification flags an actionable document issue", models.StateActionRequired},
	{"conditional-approval", "Approval subject to conditions", models.StateConditionalApproval},
	{"disbursement-pending", "Approved, money in flight", models.StateDisbursementInitiated},
	{"abandoned", "Applicant walks away from a draft", models.StateClosedIncomplete},
}

var loanTypes = []models.LoanType{
	models.LoanTypePersonal,
	models.LoanTypeBusiness,
	models.LoanTypeAuto,
}

var employmentTypes = []models.EmploymentType{
	models.EmploymentSalaried,
	models.EmploymentSelfEmployed,
	models.EmploymentGigMSME,
}

// Runner executes scenarios against an engine.
type Runner struct {
	engine *lifecycle.Engine
	log    logger.Logger
}

func NewRunner(engine *lifecycle.Engine, log logger.Logger) *Runner {
	return &Runner{
		engine: engine,
		log:    log.WithFields(map[string]interface{}{"component": "scenario-runner"}),
	}
}

// Run creates one application and advances it along the shortest legal
// path from draft to the scenario's target state. Returns the new
// application's id.
func (r *Runner) Run(s Scenario, loanType models.LoanType, employmentType models.EmploymentType) (string, error) {
	path, ok := PathTo(s.TargetState)
	if !ok {
		return "", fmt.Errorf("no path from draft to %s", s.TargetState)
	}

	id, err := r.engine.CreateApplication(loanType, employmentType, &lifecycle.CreateOptions{Scenario: s.Name})
	if err != nil {
		return "", err
	}

	for _, state := range path {
		if err := r.engine.Transition(id, state); err != nil {
			return "", fmt.Errorf("scenario %s at %s: %w", s.Name, state, err)
		}
	}

	r.log.Info("scenario completed", map[string]interface{}{
		"scenario":      s.Name,
		"applicationId": id,
		"finalState":    s.TargetState,
	})
	return id, nil
}

// RunAll executes every catalog scenario, cycling loan and employment
// types the way the explorer screen does.
func (r *Runner) RunAll() ([]string, error) {
	ids := make([]string, 0, len(Catalog))
	for i, s := range Catalog {
		id, err := r.Run(s, loanTypes[i%len(loanTypes)], employmentTypes[i%len(employmentTypes)])
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Reset wipes the application collection. Irreversible.
func (r *Runner) Reset() {
	r.engine.Clear()
}

// PathTo returns the shortest legal transition sequence from draft to
// target, excluding draft itself. The second result is false when the
// table offers no route.
func PathTo(target models.ApplicationState) ([]models.ApplicationState, bool) {
	if target == models.StateDraft {
		return nil, true
	}

	type node struct {
		state models.ApplicationState
		path  []models.ApplicationState
	}
	visited := map[models.ApplicationState]bool{models.StateDraft: true}
	queue := []node{{state: models.StateDraft}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range models.AllowedTransitions[cur.state] {
			if visited[next] {
				continue
			}
			path := append(append([]models.ApplicationState{}, cur.path...), next)
			if next == target {
				return path, true
			}
			visited[next] = true
			queue = append(queue, node{state: next, path: path})
		}
	}
	return nil, false
}
