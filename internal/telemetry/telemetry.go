// Package telemetry sends anonymous usage events to PostHog.
package telemetry

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"

	"github.com/denisbrodbeck/machineid"
	"github.com/juanibiapina/venue/internal/version"
	"github.com/posthog/posthog-go"
	"github.com/rs/xid"
)

const appID = "venue"

var (
	client     posthog.Client
	distinctID string

	baseProps = posthog.NewProperties().
			Set("goos", runtime.GOOS).
			Set("goarch", runtime.GOARCH).
			Set("term", os.Getenv("TERM")).
			Set("shell", filepath.Base(os.Getenv("SHELL"))).
			Set("version", version.Version).
			Set("go_version", runtime.Version())
)

// Init starts the PostHog client for the project key. An empty key, or
// telemetry disabled in the environment, leaves the client unset.
func Init(key, endpoint string) {
	if key == "" || isDisabled() {
		return
	}
	c, err := posthog.NewWithConfig(key, posthog.Config{
		Endpoint: endpoint,
		Logger:   logger{},
	})
	if err != nil {
		slog.Error("Failed to initialize PostHog client", "error", err)
		return
	}
	client = c
	distinctID = getDistinctID()
}

func isDisabled() bool {
	if v, _ := strconv.ParseBool(os.Getenv("VENUE_TELEMETRY_DISABLED")); v {
		return true
	}
	if v, _ := strconv.ParseBool(os.Getenv("DO_NOT_TRACK")); v {
		return true
	}
	return false
}

// getDistinctID hashes the machine id so the raw value never leaves the
// host. Machines without a readable id get a random one per process.
func getDistinctID() string {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		slog.Debug("machine id unavailable", "error", err)
		return xid.New().String()
	}
	return id
}

func send(event string, props ...any) {
	if client == nil {
		return
	}
	err := client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: pairsToProps(props...).Merge(baseProps),
	})
	if err != nil {
		slog.Error("Failed to enqueue PostHog event", "event", event, "props", props, "error", err)
	}
}

func Error(err any, props ...any) {
	if client == nil {
		return
	}
	props = append(
		[]any{
			"$exception_list",
			[]map[string]string{
				{"type": reflect.TypeOf(err).String(), "value": fmt.Sprintf("%v", err)},
			},
		},
		props...,
	)
	send("$exception", props...)
}

func Flush() {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		slog.Error("Failed to flush PostHog events", "error", err)
	}
}

func pairsToProps(props ...any) posthog.Properties {
	p := posthog.NewProperties()

	if len(props)%2 != 0 {
		slog.Error("Event properties must be provided as key-value pairs", "props", props)
		return p
	}

	for i := 0; i < len(props); i += 2 {
		name, ok := props[i].(string)
		if !ok {
			slog.Error("Event property name must be a string", "name", props[i])
			continue
		}
		p = p.Set(name, props[i+1])
	}
	return p
}
