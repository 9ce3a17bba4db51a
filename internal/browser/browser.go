// Package browser drives a live Chrome session through chromedp and exposes it
// as a ui.Page. Inspection runs an embedded collector script in the page; form
// controls are addressed by a data attribute the collector stamps on them.
// Requires Chrome/Chromium to be installed on the system.
package browser

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/jonathan/easy-apply/internal/types"
	"github.com/jonathan/easy-apply/internal/ui"
)

// DefaultTimeout bounds a single browser action
const DefaultTimeout = 30 * time.Second

const idAttr = "data-ea-id"

// minAncestorText matches the snapshot page so both implementations describe
// fields the same way
const minAncestorText = 10

//go:embed collector.js
var collectorJS string

// Options configures the Chrome session
type Options struct {
	Headless bool
	// ProfileDir is the Chrome user data directory. Reusing it keeps the login
	// session between runs.
	ProfileDir string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// Page is a ui.Page backed by one Chrome tab
type Page struct {
	tab     context.Context
	cancels []context.CancelFunc
	timeout time.Duration
	config  string
	logger  *zap.Logger
}

var _ ui.Page = (*Page)(nil)

// collectorConfig is handed to the collector script on every call
type collectorConfig struct {
	IDAttr             string   `json:"idAttr"`
	Modal              string   `json:"modal"`
	EntryPoint         string   `json:"entryPoint"`
	Banner             string   `json:"banner"`
	InlineError        string   `json:"inlineError"`
	CheckboxContainer  string   `json:"checkboxContainer"`
	DefaultGroup       string   `json:"defaultGroup"`
	DefaultInlineError string   `json:"defaultInlineError"`
	SuccessPhrases     []string `json:"successPhrases"`
	AppliedPattern     string   `json:"appliedPattern"`
	MinAncestorText    int      `json:"minAncestorText"`
}

func newCollectorConfig() string {
	data, _ := json.Marshal(collectorConfig{
		IDAttr:             idAttr,
		Modal:              ui.ModalSelector,
		EntryPoint:         ui.EntryPointSelector,
		Banner:             ui.ValidationBannerSelector,
		InlineError:        ui.InlineErrorSelector,
		CheckboxContainer:  ui.CheckboxContainerSelector,
		DefaultGroup:       ui.DefaultCheckboxGroup,
		DefaultInlineError: ui.DefaultInlineError,
		SuccessPhrases:     ui.SuccessPhrases,
		AppliedPattern:     ui.AppliedPattern.String(),
		MinAncestorText:    minAncestorText,
	})
	return string(data)
}

// allocatorOptions returns the Chrome flags for opts
func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	flags := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.ProfileDir != "" {
		flags = append(flags, chromedp.UserDataDir(opts.ProfileDir))
	}
	return flags
}

// Launch starts Chrome and opens a blank tab. Close releases it.
func Launch(ctx context.Context, opts Options) (*Page, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions(opts)...)
	tab, cancelTab := chromedp.NewContext(allocCtx)

	p := &Page{
		tab:     tab,
		cancels: []context.CancelFunc{cancelTab, cancelAlloc},
		timeout: opts.Timeout,
		config:  newCollectorConfig(),
		logger:  opts.Logger,
	}

	// An empty Run starts the browser so launch failures surface here
	if err := chromedp.Run(tab); err != nil {
		p.Close()
		return nil, &SessionError{Message: "failed to start browser", Cause: err}
	}
	p.logger.Info("browser started",
		zap.Bool("headless", opts.Headless),
		zap.String("profile_dir", opts.ProfileDir))
	return p, nil
}

// Close shuts the tab and the browser down
func (p *Page) Close() {
	for _, cancel := range p.cancels {
		cancel()
	}
	p.cancels = nil
}

// run executes actions on the tab, bounded by the action timeout and by ctx
func (p *Page) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(p.tab, p.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

// expression builds the script calling method on the collector with args
func expression(config, method string, args ...any) (string, error) {
	encoded := make([]string, len(args))
	for i, arg := range args {
		data, err := json.Marshal(arg)
		if err != nil {
			return "", fmt.Errorf("failed to encode argument %d of %s: %w", i, method, err)
		}
		encoded[i] = string(data)
	}
	return fmt.Sprintf("(%s)(%s).%s(%s)",
		strings.TrimSpace(collectorJS), config, method, strings.Join(encoded, ", ")), nil
}

func (p *Page) eval(ctx context.Context, res any, method string, args ...any) error {
	expr, err := expression(p.config, method, args...)
	if err != nil {
		return &SessionError{Message: "failed to build script", Cause: err}
	}
	if err := p.run(ctx, chromedp.Evaluate(expr, res)); err != nil {
		return &SessionError{Message: fmt.Sprintf("%s failed", method), Cause: err}
	}
	return nil
}

func selector(id string) string {
	return fmt.Sprintf(`[%s="%s"]`, idAttr, id)
}

// ModalVisible implements ui.Inspector
func (p *Page) ModalVisible(ctx context.Context) (bool, error) {
	var visible bool
	err := p.eval(ctx, &visible, "modalVisible")
	return visible, err
}

// SuccessVisible implements ui.Inspector
func (p *Page) SuccessVisible(ctx context.Context) (bool, error) {
	var visible bool
	err := p.eval(ctx, &visible, "successVisible")
	return visible, err
}

// EntryPointVisible implements ui.Inspector
func (p *Page) EntryPointVisible(ctx context.Context) (bool, error) {
	var visible bool
	err := p.eval(ctx, &visible, "entryPointVisible")
	return visible, err
}

// AlreadyApplied implements ui.Inspector
func (p *Page) AlreadyApplied(ctx context.Context) (bool, error) {
	var applied bool
	err := p.eval(ctx, &applied, "alreadyApplied")
	return applied, err
}

// Buttons implements ui.Inspector
func (p *Page) Buttons(ctx context.Context) ([]ui.Button, error) {
	var buttons []ui.Button
	if err := p.eval(ctx, &buttons, "buttons"); err != nil {
		return nil, err
	}
	return buttons, nil
}

// Elements implements ui.Inspector
func (p *Page) Elements(ctx context.Context, kind ui.ElementKind) ([]ui.Element, error) {
	switch kind {
	case ui.ElementText, ui.ElementRadio, ui.ElementCheckbox, ui.ElementSelect:
	default:
		return nil, &SessionError{Message: fmt.Sprintf("unknown element kind %q", kind)}
	}

	var elements []ui.Element
	if err := p.eval(ctx, &elements, "elements", string(kind)); err != nil {
		return nil, err
	}
	if kind != ui.ElementText {
		return elements, nil
	}

	text := elements[:0]
	for _, el := range elements {
		if _, ok := types.FieldKindFromInput(el.Tag, el.InputType); ok {
			text = append(text, el)
		}
	}
	return text, nil
}

// ValidationBanner implements ui.Inspector
func (p *Page) ValidationBanner(ctx context.Context) (string, bool, error) {
	var message string
	if err := p.eval(ctx, &message, "banner"); err != nil {
		return "", false, err
	}
	return message, message != "", nil
}

type inlineResult struct {
	Invalid bool   `json:"invalid"`
	Message string `json:"message"`
}

// InlineError implements ui.Inspector
func (p *Page) InlineError(ctx context.Context, elementID string) (string, bool, error) {
	var res *inlineResult
	if err := p.eval(ctx, &res, "inlineError", elementID); err != nil {
		return "", false, err
	}
	if res == nil {
		return "", false, &SessionError{Message: fmt.Sprintf("element %s not found", elementID)}
	}
	return res.Message, res.Invalid, nil
}

// Navigate implements ui.Driver
func (p *Page) Navigate(ctx context.Context, url string) error {
	p.logger.Debug("navigating", zap.String("url", url))
	err := p.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return &SessionError{Message: fmt.Sprintf("failed to load %s", url), Cause: err}
	}
	return nil
}

// OpenForm implements ui.Driver
func (p *Page) OpenForm(ctx context.Context) error {
	var id string
	if err := p.eval(ctx, &id, "markEntryPoint"); err != nil {
		return err
	}
	if id == "" {
		return &SessionError{Message: "entry point not found"}
	}
	return p.Click(ctx, id)
}

// Fill implements ui.Driver. Typing goes through real key events so the
// page's own input handlers see the value.
func (p *Page) Fill(ctx context.Context, elementID, value string) error {
	sel := selector(elementID)
	err := p.run(ctx,
		chromedp.Clear(sel, chromedp.ByQuery),
		chromedp.SendKeys(sel, value, chromedp.ByQuery),
	)
	if err != nil {
		return &SessionError{Message: fmt.Sprintf("failed to fill %s", elementID), Cause: err}
	}
	return nil
}

// SetChecked implements ui.Driver
func (p *Page) SetChecked(ctx context.Context, elementID string, checked bool) error {
	var current *bool
	if err := p.eval(ctx, &current, "checked", elementID); err != nil {
		return err
	}
	if current == nil {
		return &SessionError{Message: fmt.Sprintf("element %s not found", elementID)}
	}
	if *current == checked {
		return nil
	}

	// Styled inputs are often visually hidden, so toggle with a DOM click
	var ok bool
	if err := p.eval(ctx, &ok, "activate", elementID); err != nil {
		return err
	}
	if !ok {
		return &SessionError{Message: fmt.Sprintf("element %s is disabled", elementID)}
	}
	return nil
}

// SelectOption implements ui.Driver
func (p *Page) SelectOption(ctx context.Context, elementID string, optionIndex int) error {
	var ok bool
	if err := p.eval(ctx, &ok, "selectOption", elementID, optionIndex); err != nil {
		return err
	}
	if !ok {
		return &SessionError{Message: fmt.Sprintf("option %d not available for %s", optionIndex, elementID)}
	}
	return nil
}

// Click implements ui.Driver
func (p *Page) Click(ctx context.Context, buttonID string) error {
	p.logger.Debug("clicking", zap.String("id", buttonID))
	if err := p.run(ctx, chromedp.Click(selector(buttonID), chromedp.ByQuery)); err != nil {
		return &SessionError{Message: fmt.Sprintf("failed to click %s", buttonID), Cause: err}
	}
	return nil
}

// HTML returns the rendered document, for saving snapshots of live pages
func (p *Page) HTML(ctx context.Context) (string, error) {
	var html string
	if err := p.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", &SessionError{Message: "failed to read page HTML", Cause: err}
	}
	return html, nil
}
