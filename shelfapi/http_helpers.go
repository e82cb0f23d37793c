package shelfapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math/rand"
	"net/http"
	"os"
	"reflect"
	"time"

	"github.com/itchio/httpkit/neterr"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

var dumpAPICalls = os.Getenv("SHELF_API_DEBUG") == "1"

// listEnvelopeKeys are the wrapper keys under which some server
// versions nest list responses. A bare top-level array is accepted too.
var listEnvelopeKeys = []string{"games", "Games", "data", "collections", "favorites", "items"}

// GetResponse performs an HTTP GET request and parses the API response.
func (c *Client) GetResponse(ctx context.Context, url string, dst interface{}) error {
	return c.request(ctx, "GET", url, nil, dst)
}

// PostResponse performs an HTTP POST request with a JSON body and
// parses the API response.
func (c *Client) PostResponse(ctx context.Context, url string, payload interface{}, dst interface{}) error {
	return c.request(ctx, "POST", url, payload, dst)
}

// PutResponse performs an HTTP PUT request with a JSON body and parses
// the API response.
func (c *Client) PutResponse(ctx context.Context, url string, payload interface{}, dst interface{}) error {
	return c.request(ctx, "PUT", url, payload, dst)
}

// DeleteResponse performs an HTTP DELETE request. The response body, if
// any, is only inspected for errors.
func (c *Client) DeleteResponse(ctx context.Context, url string) error {
	return c.request(ctx, "DELETE", url, nil, nil)
}

func (c *Client) request(ctx context.Context, method string, url string, payload interface{}, dst interface{}) error {
	var body *bytes.Reader
	if payload != nil {
		marshalled, err := json.Marshal(payload)
		if err != nil {
			return errors.WithStack(err)
		}
		body = bytes.NewReader(marshalled)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return errors.WithStack(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.Do(req)
	if err != nil {
		return err
	}

	err = ParseAPIResponse(dst, res)
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Do performs a request (any method). It takes care of bearer
// authentication, sets the proper user agent, and retries rate-limited
// requests with exponential backoff. Transport-level failures and
// timeouts come back as CodeNetworkError.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	if dumpAPICalls {
		fmt.Fprintf(os.Stderr, "[request] %s %s\n", req.Method, req.URL)
	}

	var res *http.Response
	var err error

	// the last pattern is a token one: exhausting the schedule means we
	// surface whatever the server said last
	retryPatterns := append(c.RetryPatterns, time.Millisecond)

	for _, sleepTime := range retryPatterns {
		res, err = c.HTTPClient.Do(req)
		if err != nil {
			if neterr.IsNetworkError(err) || isTimeout(err) {
				return nil, errors.WithStack(networkError(err))
			}
			return nil, errors.WithStack(err)
		}

		if res.StatusCode == 429 {
			// rate limited, try again according to patterns
			res.Body.Close()
			time.Sleep(sleepTime + time.Duration(rand.Intn(1000))*time.Millisecond)
			if req.GetBody != nil {
				req.Body, err = req.GetBody()
				if err != nil {
					return nil, errors.WithStack(err)
				}
			}
			continue
		}

		break
	}

	return res, nil
}

// ParseAPIResponse unmarshals an HTTP response into one of our response
// data structures, tolerating the various shapes the server emits.
func ParseAPIResponse(dst interface{}, res *http.Response) error {
	if res == nil || res.Body == nil {
		return errors.WithStack(networkError(errors.New("no response from server")))
	}

	bodyReader := res.Body
	defer bodyReader.Close()

	body, err := ioutil.ReadAll(bodyReader)
	if err != nil {
		return errors.WithStack(networkError(err))
	}

	if dumpAPICalls {
		fmt.Fprintf(os.Stderr, "[response] HTTP %d %s\n", res.StatusCode, string(body))
	}

	var intermediate interface{}
	if len(bytes.TrimSpace(body)) > 0 {
		err = json.Unmarshal(body, &intermediate)
		if err != nil {
			if res.StatusCode/100 != 2 {
				return &APIError{
					Code:       classifyStatus(res.StatusCode, nil),
					StatusCode: res.StatusCode,
				}
			}
			return errors.Wrapf(err, "JSON decode error (body: %q)", string(body))
		}
	}

	if res.StatusCode/100 != 2 {
		messages := errorMessages(intermediate)
		return &APIError{
			Code:       classifyStatus(res.StatusCode, messages),
			StatusCode: res.StatusCode,
			Messages:   messages,
		}
	}

	if dst == nil || intermediate == nil {
		return nil
	}

	return decodeIntermediate(intermediate, dst)
}

// errorMessages digs whatever human-readable details the server put in
// an error body. Seen in the wild: {"message": "..."}, {"error": "..."}
// and {"errors": ["...", ...]}.
func errorMessages(intermediate interface{}) []string {
	obj, ok := intermediate.(map[string]interface{})
	if !ok {
		return nil
	}

	var messages []string
	for _, key := range []string{"message", "error"} {
		if msg, ok := obj[key].(string); ok && msg != "" {
			messages = append(messages, msg)
		}
	}
	if list, ok := obj["errors"].([]interface{}); ok {
		for _, el := range list {
			if msg, ok := el.(string); ok && msg != "" {
				messages = append(messages, msg)
			}
		}
	}
	return messages
}

func decodeIntermediate(intermediate interface{}, dst interface{}) error {
	wantsList := false
	if dstValue := reflect.ValueOf(dst); dstValue.Kind() == reflect.Ptr {
		wantsList = dstValue.Elem().Kind() == reflect.Slice
	}

	if wantsList {
		intermediate = unwrapList(intermediate)
	} else if obj, ok := intermediate.(map[string]interface{}); ok {
		// single records are occasionally wrapped too
		if inner, ok := obj["data"].(map[string]interface{}); ok {
			intermediate = inner
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           dst,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	err = decoder.Decode(intermediate)
	if err != nil {
		return errors.Wrapf(err, "decoding API response (%#v)", intermediate)
	}
	return nil
}

func isTimeout(err error) bool {
	type timeouter interface {
		Timeout() bool
	}
	if te, ok := err.(timeouter); ok {
		return te.Timeout()
	}
	return false
}

// unwrapList accepts either a bare array or an object enveloping the
// array under one of the usual keys, and returns the array.
func unwrapList(intermediate interface{}) []interface{} {
	switch v := intermediate.(type) {
	case []interface{}:
		return v
	case map[string]interface{}:
		for _, key := range listEnvelopeKeys {
			if inner, ok := v[key].([]interface{}); ok {
				return inner
			}
		}
	}
	return nil
}
