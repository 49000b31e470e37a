package odoo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/ohcnetwork/care_odoo_bridge/config"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

const requestTimeout = 30 * time.Second

// Caller is the narrow connector surface sync resources depend on.
// Payload values must be JSON-marshalable; GET payloads are sent as
// query parameters.
type Caller interface {
	Call(ctx context.Context, endpoint string, payload map[string]any, method string) (map[string]any, error)
}

// Connector talks to the custom Odoo addon API. It never retries;
// retry policy belongs to the caller.
type Connector struct {
	settings config.Settings
	client   *resty.Client
	logger   *logrus.Logger
}

func NewConnector(settings config.Settings, logger *logrus.Logger) *Connector {
	client := resty.New().
		SetBaseURL(settings.OdooBaseURL()).
		SetTimeout(requestTimeout)
	return &Connector{
		settings: settings,
		client:   client,
		logger:   logger,
	}
}

// Call performs one synchronous request against the addon API and decodes
// the JSON response. 4xx and 5xx responses become ClientError/ServerError
// carrying the remote "message" field; transport failures (including
// timeouts) collapse into ConnectionError.
func (c *Connector) Call(ctx context.Context, endpoint string, payload map[string]any, method string) (map[string]any, error) {
	auth := base64.StdEncoding.EncodeToString(
		[]byte(c.settings.OdooUsername + ":" + c.settings.OdooPassword),
	)

	req := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Basic "+auth).
		SetHeader("Content-Type", "application/json").
		SetHeader("db", c.settings.OdooDatabase)

	if method == http.MethodGet {
		req.SetQueryParams(stringifyParams(payload))
	} else {
		req.SetBody(payload)
	}

	c.logCurlEquivalent(endpoint, payload, method)

	resp, err := req.Execute(method, "/"+endpoint)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"method":   method,
		}).Error("odoo request failed: " + err.Error())
		return nil, &ConnectionError{Message: "could not reach Odoo", Err: err}
	}

	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"status":   resp.StatusCode(),
	}).Info("odoo api response")

	var parsed map[string]any
	parseErr := json.Unmarshal(resp.Body(), &parsed)

	if resp.StatusCode() >= http.StatusBadRequest {
		msg := resp.Status()
		if parseErr == nil {
			if m, ok := parsed["message"].(string); ok && m != "" {
				msg = m
			}
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return nil, &ServerError{Message: msg}
		}
		return nil, &ClientError{Message: msg}
	}

	if parseErr != nil {
		return nil, fmt.Errorf("odoo returned non-JSON body for %s: %w", endpoint, parseErr)
	}
	return parsed, nil
}

// logCurlEquivalent emits a copy-pasteable trace of the outgoing request.
// The auth header is omitted on purpose.
func (c *Connector) logCurlEquivalent(endpoint string, payload map[string]any, method string) {
	body := ""
	if len(payload) > 0 {
		if data, err := json.Marshal(payload); err == nil {
			body = fmt.Sprintf(" -d '%s'", data)
		}
	}
	c.logger.Infof("curl -X %s -H 'db: %s' -H 'Content-Type: application/json'%s '%s/%s'",
		method, c.settings.OdooDatabase, body, c.settings.OdooBaseURL(), endpoint)
}

func stringifyParams(payload map[string]any) map[string]string {
	params := make(map[string]string, len(payload))
	for k, v := range payload {
		params[k] = utils.Stringify(v)
	}
	return params
}
