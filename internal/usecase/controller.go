package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain"
	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
)

// Controller owns the state shared by all user actions of one session: the
// provider, the loaded artifacts, the form/error document and the in-flight
// guards. Use cases receive it by injection instead of sharing globals.
type Controller struct {
	mu        sync.Mutex
	provider  Provider
	retired   []Provider // replaced while a step was in flight; closed when none is
	token     *models.Artifact
	crowdsale *models.Artifact
	session   *models.Session
	inFlight  map[models.DeploymentStep]bool
	watchers  map[*Watcher]struct{}

	repo    SessionRepository
	display ErrorDisplay
	log     *slog.Logger
}

// NewController creates a controller with an empty session
func NewController(repo SessionRepository, display ErrorDisplay, log *slog.Logger) *Controller {
	return &Controller{
		inFlight: make(map[models.DeploymentStep]bool),
		watchers: make(map[*Watcher]struct{}),
		repo:     repo,
		display:  display,
		log:      log,
	}
}

// Init loads the persisted session. A session that cannot be read starts empty.
func (c *Controller) Init(ctx context.Context) error {
	session, err := c.repo.Load(ctx)
	if err != nil {
		c.log.Warn("starting with an empty session", "path", c.repo.GetPath(), "error", err)
		session = models.NewSession()
	}
	session.Normalize()

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	return nil
}

// Reset clears forms, results, artifacts and the error region and persists the empty session
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	if c.session == nil {
		c.session = models.NewSession()
	} else {
		c.session.Reset()
	}
	c.token = nil
	c.crowdsale = nil
	c.mu.Unlock()

	c.display.Show("")
	return c.persist(ctx)
}

// Close releases the provider and any provider still kept for a deployment
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.provider != nil {
		c.provider.Close()
		c.provider = nil
	}
	for _, p := range c.retired {
		p.Close()
	}
	c.retired = nil
	for w := range c.watchers {
		delete(c.watchers, w)
		w.close()
	}
}

// Provider returns the acquired provider, nil before acquisition
func (c *Controller) Provider() Provider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.provider
}

// setProvider replaces the provider. A deployment may still be watching the
// old one, so it is only closed once no step is in flight.
func (c *Controller) setProvider(p Provider) {
	c.mu.Lock()
	old := c.provider
	c.provider = p
	if old != nil && old != p && len(c.inFlight) > 0 {
		c.retired = append(c.retired, old)
		old = nil
	}
	c.mu.Unlock()

	if old != nil && old != p {
		old.Close()
	}
}

// Artifacts returns the loaded token and crowdsale artifacts (nil when not loaded)
func (c *Controller) Artifacts() (token, crowdsale *models.Artifact) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, c.crowdsale
}

func (c *Controller) setArtifact(step models.DeploymentStep, artifact *models.Artifact) {
	c.mu.Lock()
	switch step {
	case models.StepToken:
		c.token = artifact
	case models.StepCrowdsale:
		c.crowdsale = artifact
	}
	c.mu.Unlock()
	c.notify()
}

// Snapshot returns a copy of the session document
func (c *Controller) Snapshot() *models.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureSession()

	snap := &models.Session{
		Forms:     make(map[string]models.Form, len(c.session.Forms)),
		ErrorMsg:  c.session.ErrorMsg,
		Results:   make(map[models.DeploymentStep]*models.DeploymentResult, len(c.session.Results)),
		StartedAt: c.session.StartedAt,
	}
	for name, form := range c.session.Forms {
		copied := make(models.Form, len(form))
		for k, v := range form {
			copied[k] = v
		}
		snap.Forms[name] = copied
	}
	for step, result := range c.session.Results {
		r := *result
		snap.Results[step] = &r
	}
	return snap
}

// InFlight reports whether a step has an outstanding request
func (c *Controller) InFlight(step models.DeploymentStep) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[step]
}

// begin claims the in-flight slot of a step
func (c *Controller) begin(step models.DeploymentStep) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[step] {
		return fmt.Errorf("%w: %s", domain.ErrDeploymentInFlight, step)
	}
	c.inFlight[step] = true
	return nil
}

func (c *Controller) end(step models.DeploymentStep) {
	c.mu.Lock()
	delete(c.inFlight, step)
	var idle []Provider
	if len(c.inFlight) == 0 {
		idle, c.retired = c.retired, nil
	}
	current := c.provider
	c.mu.Unlock()

	for _, p := range idle {
		if p != current {
			p.Close()
		}
	}
	c.notify()
}

// stateOf reads a session result's state under the lock
func (c *Controller) stateOf(result *models.DeploymentResult) models.DeploymentState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return result.State
}

// Update mutates the session under the lock and persists it
func (c *Controller) Update(ctx context.Context, fn func(s *models.Session) error) error {
	c.mu.Lock()
	c.ensureSession()
	err := fn(c.session)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	return c.persist(ctx)
}

// PrintError replaces the error region with msg, or clears it when msg is empty
func (c *Controller) PrintError(ctx context.Context, msg string) {
	if msg != "" {
		c.log.Error(msg)
	}

	c.mu.Lock()
	c.ensureSession()
	c.session.ErrorMsg = msg
	c.mu.Unlock()

	c.display.Show(msg)
	if err := c.persist(ctx); err != nil {
		c.log.Warn("failed to persist session", "error", err)
	}
}

// ReportError shows the user-facing form of err; a nil error clears the region
func (c *Controller) ReportError(ctx context.Context, err error) {
	if err == nil {
		c.PrintError(ctx, "")
		return
	}
	c.PrintError(ctx, DisplayMessage(err))
}

// DisplayMessage converts an error into the single line shown to the user
func DisplayMessage(err error) string {
	var depErr *domain.DeploymentError
	switch {
	case errors.As(err, &depErr):
		return depErr.Message
	case errors.Is(err, domain.ErrProviderMissing) && err.Error() == domain.ErrProviderMissing.Error():
		return "No wallet provider found"
	default:
		return domain.FirstLine(err.Error())
	}
}

func (c *Controller) persist(ctx context.Context) error {
	snap := c.Snapshot()
	defer c.notify()
	if err := c.repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// ensureSession must be called with mu held
func (c *Controller) ensureSession() {
	if c.session == nil {
		c.session = models.NewSession()
	}
}

// Watcher signals session changes. Signals coalesce: a slow reader sees one
// pending signal rather than a backlog.
type Watcher struct {
	C      chan struct{}
	parent *Controller
	once   sync.Once
}

// Watch subscribes to session changes until the returned watcher is closed
func (c *Controller) Watch() *Watcher {
	w := &Watcher{C: make(chan struct{}, 1), parent: c}
	c.mu.Lock()
	c.watchers[w] = struct{}{}
	c.mu.Unlock()
	return w
}

// Close unsubscribes the watcher
func (w *Watcher) Close() {
	w.parent.mu.Lock()
	delete(w.parent.watchers, w)
	w.parent.mu.Unlock()
	w.close()
}

func (w *Watcher) close() {
	w.once.Do(func() { close(w.C) })
}

func (c *Controller) notify() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for w := range c.watchers {
		select {
		case w.C <- struct{}{}:
		default:
		}
	}
}
