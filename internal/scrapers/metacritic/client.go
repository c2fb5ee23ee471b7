// client.go contains the logic for retrieving a game page, everything that reads the
// page lives on Game.

package metacritic

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"metascrape/internal/components/assert"
	"metascrape/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_client_fetch_game = "client.fetch-game"
)

var tracer = otel.Tracer("metascrape.scrapers.metacritic")

// Client fetches game pages, it is safe for concurrent use.
type Client struct {
	baseUrl string
	http    *resty.Client
	tel     telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) *Client {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("metacritic", tel)

	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DEFAULT_BASE_URL
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DEFAULT_USER_AGENT
	}

	httpClient := resty.New()
	httpClient.SetHeader("User-Agent", userAgent)
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	telemetry.InstrumentResty(httpClient, tel, opts.Output)

	return &Client{
		baseUrl: baseUrl,
		http:    httpClient,
		tel:     tel,
	}
}

// Slug turns a game name into the path segment used by the site, it lowercases the
// name and replaces spaces with dashes, nothing else is escaped.
func Slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

// GameUrl returns the page url for a game name.
func (c *Client) GameUrl(name string) string {
	return c.baseUrl + Slug(name)
}

// FetchGame retrieves and parses the page of a game.
//
// The returned Game is never nil. If the page could not be retrieved, the error wraps
// ErrFetchFailed and the Game has no document, so all of its accessors report no data.
// The response status is not checked, any body that comes back is parsed.
func (c *Client) FetchGame(ctx context.Context, name string) (*Game, error) {
	ctx, span := tracer.Start(ctx, "FetchGame")
	defer span.End()

	link := c.GameUrl(name)
	span.SetAttributes(attribute.String("game.name", name), attribute.String("url", link))
	c.tel.ReportDebug(report_client_fetch_game, name, link)

	game := newGame(name, link, nil, c.tel)

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrFetchFailed, err)
		c.tel.ReportBroken(report_client_fetch_game, err, link)
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return game, err
	}
	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode()))
	if !res.IsSuccess() {
		c.tel.ReportWarning(
			report_client_fetch_game,
			fmt.Errorf("unexpected status: %s", res.Status()),
			link,
		)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		err = fmt.Errorf("%w: parse html: %w", ErrFetchFailed, err)
		c.tel.ReportBroken(report_client_fetch_game, err, link)
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return game, err
	}
	game.doc = doc

	return game, nil
}
