package electricitytrading

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

const defaultPort = 9090

type serverURL struct {
	target         string
	ssl            bool
	rootCertsPath  string
	certChainPath  string
	privateKeyPath string
}

// parseServerURL accepts grpc://host[:port][?ssl=..&ssl_root_certificates_path=..
// &ssl_certificate_chain_path=..&ssl_private_key_path=..].
func parseServerURL(raw string) (serverURL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return serverURL{}, fmt.Errorf("%w: server url %q: %v", ErrInvalidParameter, raw, err)
	}
	if u.Scheme != "grpc" {
		return serverURL{}, fmt.Errorf("%w: server url %q: scheme must be grpc", ErrInvalidParameter, raw)
	}
	host := u.Hostname()
	if host == "" {
		return serverURL{}, fmt.Errorf("%w: server url %q: host is required", ErrInvalidParameter, raw)
	}
	port := defaultPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return serverURL{}, fmt.Errorf("%w: server url %q: bad port %q", ErrInvalidParameter, raw, p)
		}
	}

	out := serverURL{target: net.JoinHostPort(host, strconv.Itoa(port)), ssl: true}
	for key, values := range u.Query() {
		if len(values) != 1 {
			return serverURL{}, fmt.Errorf("%w: server url %q: %s given %d times", ErrInvalidParameter, raw, key, len(values))
		}
		v := values[0]
		switch key {
		case "ssl":
			out.ssl, err = strconv.ParseBool(v)
			if err != nil {
				return serverURL{}, fmt.Errorf("%w: server url %q: ssl=%q is not a boolean", ErrInvalidParameter, raw, v)
			}
		case "ssl_root_certificates_path":
			out.rootCertsPath = v
		case "ssl_certificate_chain_path":
			out.certChainPath = v
		case "ssl_private_key_path":
			out.privateKeyPath = v
		default:
			return serverURL{}, fmt.Errorf("%w: server url %q: unknown option %q", ErrInvalidParameter, raw, key)
		}
	}
	if (out.certChainPath == "") != (out.privateKeyPath == "") {
		return serverURL{}, fmt.Errorf("%w: server url %q: certificate chain and private key go together", ErrInvalidParameter, raw)
	}
	if !out.ssl && (out.rootCertsPath != "" || out.certChainPath != "") {
		return serverURL{}, fmt.Errorf("%w: server url %q: certificates given with ssl=false", ErrInvalidParameter, raw)
	}
	return out, nil
}
