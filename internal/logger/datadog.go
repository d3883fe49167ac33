package logger

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

const (
	dataDogDefaultSite    = "datadoghq.com"
	dataDogDefaultTimeout = 2 * time.Second
	dataDogSource         = "go"
)

// logSubmitter is the part of the datadog logs API used by DataDogWriter.
type logSubmitter interface {
	SubmitLog(
		ctx context.Context,
		body []datadogV2.HTTPLogItem,
		o ...datadogV2.SubmitLogOptionalParameters,
	) (interface{}, *http.Response, error)
}

// DataDogWriter ships every JSON log line to the datadog logs intake.
type DataDogWriter struct {
	api      logSubmitter
	apiKey   string
	site     string
	service  string
	hostname string
	tags     string
	timeout  time.Duration
}

// NewDataDogWriter creates a writer for the datadog logs API.
func NewDataDogWriter(cfg Log) (*DataDogWriter, error) {
	dd := cfg.DataDog

	if dd.APIKey == "" {
		return nil, ErrDataDogAPIKeyIsEmpty
	}

	w := &DataDogWriter{
		api:     datadogV2.NewLogsApi(datadog.NewAPIClient(datadog.NewConfiguration())),
		apiKey:  dd.APIKey,
		site:    dd.Site,
		service: dd.ServiceName,
		tags:    "env:" + cfg.LogEnv + ",app:" + cfg.AppName,
		timeout: dd.Timeout,
	}

	if w.site == "" {
		w.site = dataDogDefaultSite
	}

	if w.service == "" {
		w.service = cfg.ServiceName
	}

	if w.timeout <= 0 {
		w.timeout = dataDogDefaultTimeout
	}

	w.hostname, _ = os.Hostname()

	return w, nil
}

// Write submits p as a single log item. Failures are reported to zerolog's error handler.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	ctx, cancel := context.WithTimeout(w.context(), w.timeout)
	defer cancel()

	item := datadogV2.HTTPLogItem{
		Message:  string(p),
		Ddsource: datadog.PtrString(dataDogSource),
		Ddtags:   datadog.PtrString(w.tags),
		Service:  datadog.PtrString(w.service),
	}

	if w.hostname != "" {
		item.Hostname = datadog.PtrString(w.hostname)
	}

	_, resp, err := w.api.SubmitLog(ctx, []datadogV2.HTTPLogItem{item})
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return len(p), nil
}

func (w *DataDogWriter) context() context.Context {
	ctx := context.WithValue(
		context.Background(),
		datadog.ContextAPIKeys,
		map[string]datadog.APIKey{
			"apiKeyAuth": {Key: w.apiKey},
		},
	)

	return context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{
		"site": w.site,
	})
}
