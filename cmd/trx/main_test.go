package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iho/trxledger/internal/infrastructure/config"
)

func writeTempCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing temp CSV: %v", err)
	}
	return path
}

func TestProcess_EndToEnd_Serial(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.0\n" +
		"deposit,2,2,2.0\n" +
		"deposit,1,3,2.0\n" +
		"withdrawal,1,4,1.5\n" +
		"withdrawal,2,5,3.0\n"

	path := writeTempCSV(t, input)
	cfg := &config.Config{Topology: "serial", LogLevel: "error", LogFormat: "json"}

	var out bytes.Buffer
	if err := process(cfg, path, &out); err != nil {
		t.Fatalf("process: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d: %q", len(lines), out.String())
	}

	byClient := map[string]string{}
	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		byClient[fields[0]] = line
	}
	if byClient["1"] != "1,1.5000,0.0000,1.5000,false" {
		t.Errorf("client 1 row = %q", byClient["1"])
	}
	if byClient["2"] != "2,2.0000,0.0000,2.0000,false" {
		t.Errorf("client 2 row = %q", byClient["2"])
	}
}

func TestProcess_EndToEnd_AllTopologiesAgree(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,10.0\n" +
		"deposit,1,2,5.0\n" +
		"dispute,1,1,\n" +
		"chargeback,1,1,\n" +
		"deposit,1,3,100.0\n"

	var outputs []string
	for _, topology := range []string{"serial", "sharded", "actor"} {
		path := writeTempCSV(t, input)
		cfg := &config.Config{Topology: topology, Workers: 2, LogLevel: "error", LogFormat: "json"}

		var out bytes.Buffer
		if err := process(cfg, path, &out); err != nil {
			t.Fatalf("process(%s): %v", topology, err)
		}
		outputs = append(outputs, out.String())
	}

	for i := 1; i < len(outputs); i++ {
		if outputs[i] != outputs[0] {
			t.Errorf("topology output %d differs from topology 0:\n%q\nvs\n%q", i, outputs[i], outputs[0])
		}
	}
}

func TestProcess_MissingInputFile(t *testing.T) {
	cfg := &config.Config{Topology: "serial"}
	var out bytes.Buffer
	err := process(cfg, filepath.Join(t.TempDir(), "does-not-exist.csv"), &out)
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestProcess_UnknownTopology(t *testing.T) {
	path := writeTempCSV(t, "type,client,tx,amount\ndeposit,1,1,1.0\n")
	cfg := &config.Config{Topology: "bogus"}
	var out bytes.Buffer
	if err := process(cfg, path, &out); err == nil {
		t.Fatal("expected error for unknown topology")
	}
}

func TestProcess_MalformedRowsAreSkippedNotFatal(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.0\n" +
		"not-a-type,1,2,1.0\n" +
		"deposit,1,3,2.0\n"

	path := writeTempCSV(t, input)
	cfg := &config.Config{Topology: "serial", LogLevel: "error", LogFormat: "json"}

	var out bytes.Buffer
	if err := process(cfg, path, &out); err != nil {
		t.Fatalf("process: %v", err)
	}
	if !strings.Contains(out.String(), "3.0000") {
		t.Errorf("expected both well-formed deposits reflected in output, got %q", out.String())
	}
}
