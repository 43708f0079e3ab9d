// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a operator API address in format [host]:[port]
//	-s remote sync API base URL
//	-ws remote live update websocket URL
//	-d local database DSN
//	-driver local store driver (sqlite3|memory)
//	-c/-config json file path with configs
//	-request-timeout remote request timeout (e.g., "30s")
//	-sync-interval periodic sync interval (e.g., "15m")
//	-backoff-step linear retry backoff step (e.g., "10m")
//	-max-backoff retry backoff cap (e.g., "1h")
//	-batch-size push batch size
//	-hash-key push body signing key
//	-token remote API bearer token
//	-conflict-policy default conflict policy
//	-log-level log level
func ParseFlags() *StructuredConfig {
	var operatorAddress NetAddress
	var serverURL, eventsURL string
	var databaseDSN, driver string
	var jsonConfigPath string
	var requestTimeout, syncInterval, backoffStep, maxBackoff time.Duration
	var batchSize int
	var hashKey, token string
	var conflictPolicy string
	var logLevel string

	flag.Var(&operatorAddress, "a", "Operator API net address host:port")
	flag.StringVar(&serverURL, "s", "", "Remote sync API base URL")
	flag.StringVar(&eventsURL, "ws", "", "Remote live update websocket URL")
	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.StringVar(&driver, "driver", "", "Local store driver (sqlite3|memory)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 30s)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval (e.g., 15m)")
	flag.DurationVar(&backoffStep, "backoff-step", 0, "Linear retry backoff step (e.g., 10m)")
	flag.DurationVar(&maxBackoff, "max-backoff", 0, "Retry backoff cap (e.g., 1h)")
	flag.IntVar(&batchSize, "batch-size", 0, "Push batch size")
	flag.StringVar(&hashKey, "hash-key", "", "Push body signing key")
	flag.StringVar(&token, "token", "", "Remote API bearer token")
	flag.StringVar(&conflictPolicy, "conflict-policy", "", "Default conflict policy")
	flag.StringVar(&logLevel, "log-level", "", "Log level")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			HashKey:  hashKey,
			LogLevel: logLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: driver,
				DSN:    databaseDSN,
			},
		},
		Adapter: Adapter{
			HTTPAddress:    serverURL,
			EventsAddress:  eventsURL,
			RequestTimeout: requestTimeout,
			Token:          token,
		},
		Workers: Workers{
			SyncInterval:  syncInterval,
			BackoffStep:   backoffStep,
			MaxBackoff:    maxBackoff,
			PushBatchSize: batchSize,
		},
		Conflicts: Conflicts{
			DefaultPolicy: conflictPolicy,
		},
		Server: Server{
			HTTPAddress: operatorAddress.String(),
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
