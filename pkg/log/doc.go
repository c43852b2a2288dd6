/*
Package log provides structured logging for the coordination plane using
zerolog.

The log package wraps zerolog to provide JSON-structured logging with
component-scoped child loggers, a configurable level and output writer, and
helper functions for the common one-line logging patterns used throughout
this module.

# Architecture

	┌──────────────────── LOGGING SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Global Logger                    │          │
	│  │  - zerolog.Logger instance                  │          │
	│  │  - Initialized via log.Init()               │          │
	│  │  - Safe for concurrent use                  │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Configuration                     │          │
	│  │  - Level: debug/info/warn/error             │          │
	│  │  - Format: JSON or console (human)          │          │
	│  │  - Output: stdout or custom writer          │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │         Context Loggers                     │          │
	│  │  - WithComponent("coordinator")              │          │
	│  │  - WithJobID("ns/job-1")                    │          │
	│  │  - WithPeer("10.0.0.4:7070")                 │          │
	│  └────────────────────────────────────────────┘          │
	└────────────────────────────────────────────────────────────┘

# Usage

Initializing the logger:

	import "github.com/yuan-yuan-jia/lightflus/pkg/log"

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

Simple logging:

	log.Info("coordinator starting")
	log.Debug("probing worker registry")
	log.Warn("heartbeat timeout approaching")
	log.Error("dataflow submission failed")

Structured logging:

	log.Logger.Info().
		Str("job_id", jobID.String()).
		Int("nodes", len(df.Nodes)).
		Msg("dataflow created")

Context loggers:

	compLog := log.WithComponent("cluster")
	compLog.Info().Msg("probe cycle starting")

	jobLog := log.WithJobID(jobID.String())
	jobLog.Error().Err(err).Msg("terminate failed")

	peerLog := log.WithPeer(addr.String())
	peerLog.Debug().Msg("dialing worker")

	callLog := log.WithRPCCall(addr.String(), "CreateSubDataflow", correlationID)
	callLog.Debug().Msg("rpc call started")

# Log Levels

Debug: verbose, per-call tracing — gateway call start/finish, probe detail.
Info: default production level — lifecycle events, server startup/shutdown.
Warn: unexpected but recoverable — a failed RPC call result.
Error: operation failures that need investigation.
Fatal: unrecoverable startup errors; logs then os.Exit(1).

# Design Patterns

Global logger pattern: one package-level zerolog.Logger, initialized once
at process start, used from every package without being threaded through
call signatures.

Context logger pattern: WithComponent/WithJobID/WithPeer return a child
logger with one extra field baked in, so a caller that already knows its
component or peer doesn't have to repeat it on every log call.

# Best Practices

Do:
  - Use structured fields (.Str, .Int, .Err) instead of string formatting
  - Create a context logger once per request/call and reuse it
  - Log errors with .Err() so they serialize consistently

Don't:
  - Log secrets (tokens, credentials) at any level
  - Use Debug level in production
  - Concatenate request data into the message string
*/
package log
