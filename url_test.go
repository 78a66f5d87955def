package electricitytrading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServerURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want serverURL
	}{
		{"default port and ssl", "grpc://trading.example.com", serverURL{target: "trading.example.com:9090", ssl: true}},
		{"explicit port", "grpc://trading.example.com:443", serverURL{target: "trading.example.com:443", ssl: true}},
		{"ssl off", "grpc://localhost:50051?ssl=false", serverURL{target: "localhost:50051"}},
		{"ipv6", "grpc://[::1]:50051?ssl=0", serverURL{target: "[::1]:50051"}},
		{
			"certificates",
			"grpc://h?ssl_root_certificates_path=/ca.pem&ssl_certificate_chain_path=/c.pem&ssl_private_key_path=/k.pem",
			serverURL{target: "h:9090", ssl: true, rootCertsPath: "/ca.pem", certChainPath: "/c.pem", privateKeyPath: "/k.pem"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseServerURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseServerURL_Invalid(t *testing.T) {
	for _, raw := range []string{
		"http://trading.example.com",
		"grpc://",
		"grpc://h:notaport",
		"grpc://h:70000",
		"grpc://h?ssl=maybe",
		"grpc://h?ssl=true&ssl=false",
		"grpc://h?compression=gzip",
		"grpc://h?ssl_certificate_chain_path=/c.pem",
		"grpc://h?ssl=false&ssl_root_certificates_path=/ca.pem",
		"::not a url",
	} {
		_, err := parseServerURL(raw)
		assert.ErrorIs(t, err, ErrInvalidParameter, raw)
	}
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := NewClient("https://trading.example.com")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNewClient_MissingRootCertificates(t *testing.T) {
	_, err := NewClient("grpc://h?ssl_root_certificates_path=" + t.TempDir() + "/missing.pem")
	assert.Error(t, err)
}
