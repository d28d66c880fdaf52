package fetcher

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/requester/middleware"
	"github.com/sirupsen/logrus"
)

// UserAgent sets the User-Agent header on every outgoing request.
func UserAgent(ua string) middleware.RoundTripperHandler {
	return func(next http.RoundTripper) http.RoundTripper {
		return middleware.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if ua != "" {
				req = req.Clone(req.Context())
				req.Header.Set("User-Agent", ua)
			}
			return next.RoundTrip(req)
		})
	}
}

// LoggingRoundTripper logs every feed request and its response at debug level.
func LoggingRoundTripper(log *logrus.Entry) middleware.RoundTripperHandler {
	return func(next http.RoundTripper) http.RoundTripper {
		return middleware.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if !log.Logger.IsLevelEnabled(logrus.DebugLevel) {
				return next.RoundTrip(req)
			}

			lg := log.WithFields(logrus.Fields{
				"method": req.Method,
				"url":    req.URL.String(),
			})
			lg.Debug("Request sent")

			start := time.Now()
			resp, err := next.RoundTrip(req)
			lg = lg.WithField("elapsed", time.Since(start))
			if err != nil {
				lg.WithError(err).Debug("Request failed")
				return resp, err
			}

			var body string
			resp.Body, body = copyAndTrim(resp.Body)
			lg.WithFields(logrus.Fields{
				"status": resp.StatusCode,
				"body":   body,
			}).Debug("Response received")

			return resp, nil
		})
	}
}

const trimBodyAt = 512

// copyAndTrim returns a reader equivalent to r and the first trimBodyAt bytes of it.
func copyAndTrim(r io.ReadCloser) (io.ReadCloser, string) {
	if r == nil {
		return nil, ""
	}

	buf := &bytes.Buffer{}
	read, err := io.CopyN(buf, r, trimBodyAt)

	result := buf.String()
	if read == trimBodyAt {
		result += "..."
	}
	result = strings.ReplaceAll(result, "\n", "")
	result = strings.ReplaceAll(result, "\t", "")

	if err != nil {
		// body is exhausted, the buffer holds all of it
		r.Close()
		return io.NopCloser(bytes.NewReader(buf.Bytes())), result
	}
	return &closer{rd: io.MultiReader(buf, r), closeFn: r.Close}, result
}

type closer struct {
	rd      io.Reader
	closeFn func() error
}

func (c *closer) Read(p []byte) (n int, err error) { return c.rd.Read(p) }
func (c *closer) Close() error                     { return c.closeFn() }
