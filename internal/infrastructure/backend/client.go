package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"tradein/internal/config"
	"tradein/internal/domain"
	"tradein/internal/domain/entity"
	"tradein/pkg/errcodes"
	"tradein/pkg/httpx"
	"tradein/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Client talks to the trade-in backend. It is the only place raw wire shapes
// exist; every method returns canonical domain records.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.Backend) *Client {
	var transport http.RoundTripper = httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
	)

	if cfg.APIToken != "" {
		transport = httpx.NewAuthBearerRoundTripper(transport, staticToken(cfg.APIToken))
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
	}
}

// staticToken satisfies the bearer round tripper for backends using a fixed
// API token.
type staticToken string

func (staticToken) Authenticate(context.Context) error { return nil }
func (t staticToken) BearerToken() string              { return string(t) }

func (c *Client) SearchCards(ctx context.Context, query string, limit int) ([]entity.CatalogCard, int, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var resp searchResponseSchema
	if err := c.get(ctx, "/cards/search", params, &resp); err != nil {
		return nil, 0, fmt.Errorf("search cards: %w", err)
	}

	return cardsToDomain(resp.Cards), resp.Count, nil
}

func (c *Client) BrowseCards(ctx context.Context, page, limit int, facets entity.BrowseFacets) (entity.CardPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	if facets.Set != "" {
		params.Set("set", facets.Set)
	}
	if facets.Language != "" {
		params.Set("language", facets.Language)
	}
	if facets.Game != "" {
		params.Set("game", facets.Game)
	}

	var resp browseResponseSchema
	if err := c.get(ctx, "/cards/browse", params, &resp); err != nil {
		return entity.CardPage{}, fmt.Errorf("browse cards: %w", err)
	}

	return entity.CardPage{
		Cards:       cardsToDomain(resp.Cards),
		CurrentPage: resp.CurrentPage,
		TotalPages:  resp.TotalPages,
		TotalCards:  resp.TotalCards,
	}, nil
}

func (c *Client) ListSets(ctx context.Context, game string) ([]entity.CardSet, error) {
	params := url.Values{}
	if game != "" {
		params.Set("game", game)
	}

	var resp setsResponseSchema
	if err := c.get(ctx, "/cards/sets", params, &resp); err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}

	sets := make([]entity.CardSet, len(resp.Sets))
	for i, s := range resp.Sets {
		sets[i] = s.toDomain()
	}

	return sets, nil
}

func (c *Client) ListLanguages(ctx context.Context, game string) ([]entity.CardLanguage, error) {
	params := url.Values{}
	if game != "" {
		params.Set("game", game)
	}

	var resp languagesResponseSchema
	if err := c.get(ctx, "/cards/languages", params, &resp); err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}

	languages := make([]entity.CardLanguage, len(resp.Languages))
	for i, l := range resp.Languages {
		languages[i] = l.toDomain()
	}

	return languages, nil
}

func (c *Client) GetSettings(ctx context.Context) (entity.TradeSettings, error) {
	var resp settingsSchema
	if err := c.get(ctx, "/settings", nil, &resp); err != nil {
		return entity.TradeSettings{}, fmt.Errorf("get settings: %w", err)
	}

	return resp.toDomain(), nil
}

func (c *Client) CreateSubmission(ctx context.Context, req entity.SubmissionRequest) (entity.CreatedSubmission, error) {
	payload := submissionRequestSchema{
		Email:          req.Contact.Email,
		Phone:          req.Contact.Phone,
		ContactChannel: req.Contact.ContactChannel,
		PayoutType:     string(req.PayoutType),
		Items:          make([]submissionItemRequestSchema, len(req.Items)),
	}

	// Bank fields travel only for bank payouts.
	if req.Bank != nil {
		payload.AccountHolder = req.Bank.AccountHolder
		payload.SortCode = req.Bank.SortCode
		payload.AccountNumber = req.Bank.AccountNumber
	}

	for i, item := range req.Items {
		payload.Items[i] = submissionItemRequestSchema{
			CardID:           item.CardID,
			Name:             item.Name,
			SetLabel:         item.SetLabel,
			ClaimedCondition: item.Condition.String(),
			Quantity:         item.Quantity,
			PricePerItem:     item.PricePerItem,
		}
	}

	var resp createSubmissionResponseSchema
	if err := c.post(ctx, "/submissions", payload, &resp); err != nil {
		return entity.CreatedSubmission{}, fmt.Errorf("create submission: %w", err)
	}

	created := entity.CreatedSubmission{
		Number:      resp.SubmissionNumber,
		Status:      entity.SubmissionStatus(resp.Status),
		QuotedTotal: resp.QuotedTotal,
		BonusAmount: resp.BonusAmount,
		Items:       make([]entity.SubmissionItem, len(resp.Items)),
	}
	for i, item := range resp.Items {
		created.Items[i] = item.toDomain()
	}

	return created, nil
}

func (c *Client) TrackSubmission(ctx context.Context, number string) (entity.TrackResult, error) {
	params := url.Values{}
	params.Set("number", number)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/track?"+params.Encode(), http.NoBody)
	if err != nil {
		return entity.TrackResult{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entity.TrackResult{}, domain.WrapError(err, errcodes.BackendUnavailable, "tracking request failed")
	}
	defer resp.Body.Close()

	// The backend answers 404 with the same found:false body shape; either
	// way not-found is data, not a transport error.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return entity.TrackResult{}, c.statusError(resp)
	}

	var schema trackResponseSchema
	if err := json.NewDecoder(resp.Body).Decode(&schema); err != nil {
		return entity.TrackResult{}, domain.WrapError(err, errcodes.BackendUnavailable, "tracking response malformed")
	}

	result := entity.TrackResult{
		Found: schema.Found,
		Error: schema.Error,
	}

	if !schema.Found {
		return result, nil
	}

	if schema.Submission != nil {
		result.Submission = schema.Submission.toDomain()
	}

	result.Timeline = make([]entity.TimelineStep, len(schema.Timeline))
	for i, step := range schema.Timeline {
		result.Timeline[i] = step.toDomain()
	}

	result.Items = make([]entity.SubmissionItem, len(schema.Items))
	for i, item := range schema.Items {
		result.Items[i] = item.toDomain()
	}

	if schema.GradingResults != nil {
		grading := schema.GradingResults.toDomain()
		result.Grading = &grading
	}

	return result, nil
}

// PackingSlipURL builds the printable packing-slip link for a submission.
func (c *Client) PackingSlipURL(number string) string {
	return c.baseURL + "/packing-slip/" + url.PathEscape(number)
}

// ShippingInstructionsURL builds the printable shipping-instructions link.
func (c *Client) ShippingInstructionsURL(number string) string {
	return c.baseURL + "/shipping-instructions/" + url.PathEscape(number)
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, dest any) error {
	target := c.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	return c.do(req, dest)
}

func (c *Client) post(ctx context.Context, endpoint string, payload, dest any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.do(req, dest)
}

func (c *Client) do(req *http.Request, dest any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(err, errcodes.BackendUnavailable, "backend request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.statusError(resp)
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return domain.WrapError(err, errcodes.BackendUnavailable, "backend response malformed")
	}

	return nil
}

// statusError surfaces the server-supplied message when one exists so the UI
// can show it instead of a generic banner.
func (c *Client) statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var schema errorResponseSchema
	_ = json.Unmarshal(body, &schema)

	message := schema.Message
	if message == "" {
		message = schema.Error
	}
	if message == "" {
		message = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}

	code := errcodes.BackendUnavailable
	if resp.StatusCode == http.StatusNotFound {
		code = errcodes.NotFound
	}

	return domain.NewError(code, message)
}
