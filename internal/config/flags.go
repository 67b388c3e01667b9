// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
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

// parseFlags parses the server flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN (postgres://, sqlite://, mongodb://, memory://)
//	-db-name mongo database name
//	-c/-config json file path with configs
//	-token-sign-key token verification key
//	-token-issuer expected token issuer
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-rate-limit-rps per-owner vault requests per second
//	-rate-limit-burst per-owner burst size
//	-health-interval store health check interval
//	-decrypt-concurrency parallel decryptions per list request
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-pass-vault", flag.ContinueOnError)

	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN, databaseName string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var requestTimeout, healthInterval time.Duration
	var rateLimitRPS float64
	var rateLimitBurst, decryptConcurrency int

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseName, "db-name", "", "Mongo database name")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token verification key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Float64Var(&rateLimitRPS, "rate-limit-rps", 0, "Vault requests per second per owner")
	fs.IntVar(&rateLimitBurst, "rate-limit-burst", 0, "Vault request burst per owner")
	fs.DurationVar(&healthInterval, "health-interval", 0, "Store health check interval")
	fs.IntVar(&decryptConcurrency, "decrypt-concurrency", 0, "Parallel decryptions per list request")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
		},
		Storage: Storage{
			DB: DB{
				DSN:  databaseDSN,
				Name: databaseName,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
			RateLimitRPS:   rateLimitRPS,
			RateLimitBurst: rateLimitBurst,
		},
		Workers: Workers{
			HealthInterval:     healthInterval,
			DecryptConcurrency: decryptConcurrency,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
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
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
