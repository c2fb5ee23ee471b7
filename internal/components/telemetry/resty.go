package telemetry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	report_resty_request  = "resty.request"
	report_resty_response = "resty.response"
	report_resty_metrics  = "resty.metrics"
)

// MessageOutput receives a textual dump of every HTTP exchange, keyed by request id.
type MessageOutput interface {
	Write(id string, contents string)
}

type instrumentResty struct {
	tel       API
	output    MessageOutput
	duration  metric.Float64Histogram
	idcounter *uint64
}

// InstrumentResty attaches telemetry hooks to a resty client.
// `output` can be nil, in which case HTTP exchanges are not dumped anywhere.
func InstrumentResty(client *resty.Client, tel API, output MessageOutput) {
	var idcounter uint64
	i := instrumentResty{tel: tel, output: output, idcounter: &idcounter}

	duration, err := otel.Meter("metascrape.telemetry").Float64Histogram(
		"http.client.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of outbound HTTP requests."),
	)
	if err != nil {
		tel.ReportWarning(report_resty_metrics, fmt.Errorf("create histogram: %w", err))
	} else {
		i.duration = duration
	}

	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

type reqCtxKeyType int

var reqCtxKey reqCtxKeyType

type reqCtx struct {
	id        uint64
	startTime time.Time
}

func (i instrumentResty) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	start := time.Now()
	ctx := req.Context()

	id := atomic.AddUint64(i.idcounter, 1)
	ctx = context.WithValue(ctx, reqCtxKey, reqCtx{
		id:        id,
		startTime: start,
	})
	i.tel.ReportDebug(report_resty_request, id, req.Method, req.URL)

	req.SetContext(ctx)
	return nil
}

func (i instrumentResty) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	end := time.Now()
	ctx := res.Request.Context()

	reqCtx, ok := ctx.Value(reqCtxKey).(reqCtx)
	if !ok {
		panic("failed to get request context")
	}

	duration := end.Sub(reqCtx.startTime)

	i.tel.ReportDebug(
		report_resty_response,
		reqCtx.id,
		duration.String(),
		res.Status(),
	)
	if i.duration != nil {
		i.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(
			attribute.String("http.request.method", res.Request.Method),
			attribute.Int("http.response.status_code", res.StatusCode()),
		))
	}
	if i.output != nil {
		i.output.Write(strconv.FormatUint(reqCtx.id, 10), formatHttpMessage(res))
	}

	return nil
}

func (i instrumentResty) onError(req *resty.Request, err error) {
	end := time.Now()
	ctx := req.Context()

	reqCtx, ok := ctx.Value(reqCtxKey).(reqCtx)
	if !ok {
		i.tel.ReportBroken(report_resty_response, err, req.Method, req.URL)
		return
	}

	duration := end.Sub(reqCtx.startTime)

	i.tel.ReportBroken(
		report_resty_response,
		err,
		req.Method,
		req.URL,
		duration,
	)
	if i.output != nil {
		i.output.Write(strconv.FormatUint(reqCtx.id, 10), formatHttpRequest(req))
	}
}

func formatHeaders(headers http.Header) string {
	var out strings.Builder
	for k, vals := range headers {
		for _, v := range vals {
			out.WriteString(fmt.Sprintf("%s: %s\n", k, v))
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func formatRequestBody(req *http.Request) string {
	if req == nil || req.GetBody == nil {
		return "<NO BODY AVAILABLE>"
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("failed to get request body: %s", err.Error())
	}
	readBody, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("failed to read request body: %s", err.Error())
	}
	return string(readBody)
}

// 1: request method
// 2: request url
// 3: request headers in ("Key: Value" format)
// 4: request body
// 5: response status
// 6: response url
// 7: response headers in ("Key: Value" format)
// 8: response body
const messageInfoTemplate = `---- REQUEST ----

%s %s

%s

%s

---- RESPONSE ----

%s %s

%s

%s`

func formatHttpMessage(res *resty.Response) string {
	var requestHeaders string
	if res.Request.RawRequest != nil {
		requestHeaders = formatHeaders(res.Request.RawRequest.Header)
	}
	responseHeaders := formatHeaders(res.Header())

	responseUrl := res.Request.URL
	if res.RawResponse != nil {
		redirected, err := res.RawResponse.Location()
		if err == nil {
			responseUrl = redirected.String()
		}
	}

	return fmt.Sprintf(
		messageInfoTemplate,

		res.Request.Method, res.Request.URL,
		requestHeaders,
		formatRequestBody(res.Request.RawRequest),

		strconv.Itoa(res.StatusCode()), responseUrl,
		responseHeaders,
		res.String(),
	)
}

// 1: request method
// 2: request url
// 3: request headers in ("Key: Value" format)
// 4: request body
const requestInfoTemplate = `---- REQUEST ----

%s %s

%s

%s`

func formatHttpRequest(req *resty.Request) string {
	return fmt.Sprintf(
		requestInfoTemplate,
		req.Method,
		req.URL,
		formatHeaders(req.Header),
		formatRequestBody(req.RawRequest),
	)
}
