// Package comm handles all the user-facing output of shelf: plain
// logging for humans, JSON-lines for machines driving us.
package comm

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var settings = &struct {
	quiet   bool
	verbose bool
	json    bool
	panic   bool
}{}

var (
	warnColor = color.New(color.FgYellow).SprintFunc()
	errColor  = color.New(color.FgRed).SprintFunc()
)

// Configure sets all logging options in one go.
func Configure(quiet bool, verbose bool, json bool, panic bool) {
	settings.quiet = quiet
	settings.verbose = verbose
	settings.json = json
	settings.panic = panic
}

// JSONEnabled reports whether we're in machine-readable output mode.
func JSONEnabled() bool {
	return settings.json
}

type jsonMessage map[string]interface{}

// Opf prints a formatted string informing the user on what operation
// we're doing.
func Opf(format string, args ...interface{}) {
	Logf("• %s", fmt.Sprintf(format, args...))
}

// Statf prints a formatted string informing the user about the outcome
// of an operation.
func Statf(format string, args ...interface{}) {
	Logf("✓ %s", fmt.Sprintf(format, args...))
}

// Log sends an informational message to the client.
func Log(msg string) {
	Logl("info", msg)
}

// Logf sends a formatted informational message to the client.
func Logf(format string, args ...interface{}) {
	Loglf("info", format, args...)
}

// Warn lets the user know about a problem that's non-critical.
func Warn(msg string) {
	Logl("warning", msg)
}

// Warnf is a formatted variant of Warn.
func Warnf(format string, args ...interface{}) {
	Loglf("warning", format, args...)
}

// Debug messages are like Info messages, but printed only when verbose.
func Debug(msg string) {
	Logl("debug", msg)
}

// Debugf is a formatted variant of Debug.
func Debugf(format string, args ...interface{}) {
	Loglf("debug", format, args...)
}

// Logl logs a message of a given level.
func Logl(level string, msg string) {
	send("log", jsonMessage{
		"message": msg,
		"level":   level,
	})
}

// Loglf logs a formatted message of a given level.
func Loglf(level string, format string, args ...interface{}) {
	Logl(level, fmt.Sprintf(format, args...))
}

// Die exits with a non-zero exit code after giving a reason to the
// client.
func Die(msg string) {
	send("error", jsonMessage{
		"message": msg,
	})
}

// Dief is a formatted variant of Die.
func Dief(format string, args ...interface{}) {
	Die(fmt.Sprintf(format, args...))
}

// Result sends a result value: printed as JSON in machine mode,
// silently dropped otherwise (human-facing commands print their own
// tables).
func Result(value interface{}) {
	send("result", jsonMessage{
		"value": value,
	})
}

// ResultOrPrint sends value in machine mode, or runs the given printer
// for humans.
func ResultOrPrint(value interface{}, p func()) {
	if settings.json {
		Result(value)
	} else {
		p()
	}
}

// Notice prints a box with important info in it.
func Notice(header string, lines []string) {
	if settings.json {
		Logf("notice: %s", header)
		for _, line := range lines {
			Logf("notice: %s", line)
		}
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetColWidth(60)
	table.SetHeader([]string{header})
	for _, line := range lines {
		table.Append([]string{line})
	}
	table.Render()
}

// sends a message to the client
func send(msgType string, obj jsonMessage) {
	if settings.json {
		obj["type"] = msgType
		obj["time"] = time.Now().UTC().Unix()
		if msgType == "log" && obj["level"] == "debug" && !settings.verbose {
			return
		}
		sendJSON(obj)
		if msgType == "error" {
			os.Exit(1)
		}
		return
	}

	switch msgType {
	case "log":
		switch obj["level"] {
		case "info":
			if !settings.quiet {
				log.Println(obj["message"])
			}
		case "debug":
			if !settings.quiet && settings.verbose {
				log.Println(obj["message"])
			}
		default:
			log.Printf("%s: %s\n", warnColor(obj["level"]), obj["message"])
		}
	case "error":
		if settings.panic {
			log.Panicln(errColor(obj["message"]))
		} else {
			log.Println(errColor(obj["message"]))
			os.Exit(1)
		}
	}
}

// sends a JSON-encoded message to the client
func sendJSON(obj jsonMessage) {
	marshalled, _ := json.Marshal(obj)
	fmt.Println(string(marshalled))
}
