// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSerialize(t *testing.T) {
	env := newTestEnv()
	p := mustNew(t, env, true)
	if err := p.SetConfig(p.Config().WithBloomEnabled(true).WithBloomKernel(32)); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}

	want := Record{
		CustomType:   CustomType,
		Name:         "default",
		HDR:          true,
		BloomEnabled: true,
		BloomScale:   DefaultBloomScale,
		BloomKernel:  32,
		BloomWeight:  DefaultBloomWeight,
	}
	if diff := cmp.Diff(want, p.Serialize()); diff != "" {
		t.Errorf("Serialize mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(NewRecord("main", DefaultConfig().WithAntiAliasEnabled(true)))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, key := range []string{
		`"customType":"DefaultRenderingPipeline"`, `"_name":"main"`, `"_hdr":false`,
		`"bloomEnabled":false`, `"fxaaEnabled":true`, `"bloomScale":0.6`,
		`"bloomKernel":64`, `"bloomWeight":0.15`,
	} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON %s missing %s", data, key)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	records := []Record{
		NewRecord("minimal", DefaultConfig()),
		NewRecord("aa", DefaultConfig().WithAntiAliasEnabled(true)),
		{
			CustomType: CustomType, Name: "hdr-bloom", HDR: true, BloomEnabled: true,
			AntiAliasEnabled: true, BloomScale: 0.25, BloomKernel: 12.5, BloomWeight: 0.9,
		},
		{
			CustomType: CustomType, Name: "bloom", BloomEnabled: true,
			BloomScale: 1, BloomKernel: 100, BloomWeight: 0,
		},
	}
	for _, rec := range records {
		t.Run(rec.Name, func(t *testing.T) {
			env := newTestEnv()
			p, err := Parse(rec, env.Environment, "scenes/", WithCameras(testCamera("c")))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if diff := cmp.Diff(rec, p.Serialize()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
			if p.RootURL() != "scenes/" {
				t.Errorf("RootURL() = %q", p.RootURL())
			}
			if diff := cmp.Diff(executedIDs(rec.Config()), p.Topology()); diff != "" {
				t.Errorf("topology mismatch (-want +got):\n%s", diff)
			}
			if len(p.Cameras()) != 1 {
				t.Errorf("Cameras() = %v, want the option camera", p.Cameras())
			}
		})
	}
}

func TestParseUsesRecordHDR(t *testing.T) {
	env := newTestEnv()
	rec := NewRecord("hdr", DefaultConfig())
	rec.HDR = true
	p, err := Parse(rec, env.Environment, "", WithConfig(DefaultConfig().WithBloomEnabled(true)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.HDR() {
		t.Error("HDR should come from the record")
	}
	if p.BloomEnabled() {
		t.Error("record configuration should take precedence over options")
	}
}

func TestParseErrors(t *testing.T) {
	env := newTestEnv()

	rec := NewRecord("x", DefaultConfig())
	rec.CustomType = "SSAORenderingPipeline"
	if _, err := Parse(rec, env.Environment, ""); !errors.Is(err, ErrCustomType) {
		t.Errorf("Parse(other type) = %v, want ErrCustomType", err)
	}

	rec = NewRecord("x", DefaultConfig())
	rec.BloomScale = -1
	if _, err := Parse(rec, env.Environment, ""); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Parse(invalid) = %v, want ErrInvalidConfig", err)
	}
	if got := env.Manager.Pipelines(); len(got) != 0 {
		t.Errorf("failed Parse registered %v", got)
	}
}

func TestRecordTOML(t *testing.T) {
	rec := Record{
		CustomType: CustomType, Name: "main", HDR: true, BloomEnabled: true,
		BloomScale: 0.5, BloomKernel: 48, BloomWeight: 0.2,
	}
	data, err := rec.MarshalTOML()
	if err != nil {
		t.Fatalf("MarshalTOML: %v", err)
	}
	if !strings.Contains(string(data), "fxaaEnabled") {
		t.Errorf("TOML missing fxaaEnabled:\n%s", data)
	}
	got, err := UnmarshalRecordTOML(data)
	if err != nil {
		t.Fatalf("UnmarshalRecordTOML: %v", err)
	}
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("TOML round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalRecordTOMLDefaults(t *testing.T) {
	got, err := UnmarshalRecordTOML([]byte("_name = \"partial\"\nbloomEnabled = true\n"))
	if err != nil {
		t.Fatalf("UnmarshalRecordTOML: %v", err)
	}
	want := NewRecord("partial", DefaultConfig().WithBloomEnabled(true))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := UnmarshalRecordTOML([]byte("bloomScale = [")); err == nil {
		t.Error("malformed TOML should fail")
	}
}
