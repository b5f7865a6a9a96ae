package memdev

import (
	"testing"

	"go.viam.com/test"
)

func TestConfigValidate(t *testing.T) {
	test.That(t, testConfig().Validate("test"), test.ShouldBeNil)

	for _, tc := range []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing name", func(c *Config) { c.Name = "" }},
		{"missing max clock", func(c *Config) { c.MaxClockHz = 0 }},
		{"address width too wide", func(c *Config) { c.Data.AddrBytes = 3 }},
		{"address width zero", func(c *Config) { c.Data.AddrBytes = 0 }},
		{"page size not a power of two", func(c *Config) { c.Data.PageSize = 24 }},
		{"page size zero", func(c *Config) { c.Data.PageSize = 0 }},
		{"total size not a page multiple", func(c *Config) { c.Data.TotalSize = 100 }},
		{"control space without commands", func(c *Config) {
			c.Control = &AddressSpace{Base: 0x30, AddrBytes: 1, PageSize: 256, TotalSize: 256}
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			conf := testConfig()
			tc.mutate(conf)
			test.That(t, conf.Validate("test"), test.ShouldNotBeNil)
		})
	}
}
