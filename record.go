// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package postfx

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// CustomType identifies default rendering pipeline records.
const CustomType = "DefaultRenderingPipeline"

// Record is the serialized form of a pipeline. The JSON field names are
// compatible with existing scene files.
type Record struct {
	CustomType       string  `json:"customType" toml:"customType"`
	Name             string  `json:"_name" toml:"_name"`
	HDR              bool    `json:"_hdr" toml:"_hdr"`
	BloomEnabled     bool    `json:"bloomEnabled" toml:"bloomEnabled"`
	AntiAliasEnabled bool    `json:"fxaaEnabled" toml:"fxaaEnabled"`
	BloomScale       float64 `json:"bloomScale" toml:"bloomScale"`
	BloomKernel      float64 `json:"bloomKernel" toml:"bloomKernel"`
	BloomWeight      float64 `json:"bloomWeight" toml:"bloomWeight"`
}

// NewRecord returns a record of cfg for a pipeline named name.
func NewRecord(name string, cfg Config) Record {
	return Record{
		CustomType:       CustomType,
		Name:             name,
		HDR:              cfg.HDR,
		BloomEnabled:     cfg.BloomEnabled,
		AntiAliasEnabled: cfg.AntiAliasEnabled,
		BloomScale:       cfg.BloomScale,
		BloomKernel:      cfg.BloomKernel,
		BloomWeight:      cfg.BloomWeight,
	}
}

// Config returns the configuration stored in the record.
func (r Record) Config() Config {
	return Config{
		HDR:              r.HDR,
		BloomEnabled:     r.BloomEnabled,
		AntiAliasEnabled: r.AntiAliasEnabled,
		BloomScale:       r.BloomScale,
		BloomKernel:      r.BloomKernel,
		BloomWeight:      r.BloomWeight,
	}
}

// MarshalTOML encodes the record as a TOML document.
func (r Record) MarshalTOML() ([]byte, error) {
	data, err := toml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("postfx: encode record: %w", err)
	}
	return data, nil
}

// UnmarshalRecordTOML decodes a TOML document into a record. Fields missing
// from the document take their default configuration values, and a missing
// custom type is filled in.
func UnmarshalRecordTOML(data []byte) (Record, error) {
	rec := NewRecord("", DefaultConfig())
	if err := toml.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("postfx: decode record: %w", err)
	}
	return rec, nil
}

// Serialize returns the record of the pipeline's current state.
func (p *Pipeline) Serialize() Record {
	return NewRecord(p.name, p.cfg)
}

// Parse creates a pipeline from a record. The record's name, HDR flag and
// configuration take precedence over opts.
func Parse(rec Record, env Environment, rootURL string, opts ...Option) (*Pipeline, error) {
	if rec.CustomType != CustomType {
		return nil, fmt.Errorf("%w: %q", ErrCustomType, rec.CustomType)
	}
	cfg := rec.Config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	all := make([]Option, 0, len(opts)+2)
	all = append(all, opts...)
	all = append(all, WithConfig(cfg), WithRootURL(rootURL))
	return New(rec.Name, rec.HDR, env, all...)
}
