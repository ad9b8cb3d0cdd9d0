package middleware

import (
	"net"
	"net/http"
	"strings"
)

// forwardingHeaders carregam o endereço do cliente quando há um proxy na frente da API
var forwardingHeaders = []string{"X-Forwarded-For", "X-Real-IP", "X-Forwarded-Proto"}

// TrustedProxy remove os headers de encaminhamento, a menos que a requisição
// venha de um proxy em trusted. As entradas são IPs ou faixas CIDR.
func TrustedProxy(trusted []string) func(http.Handler) http.Handler {
	proxies := parseProxies(trusted)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !proxies.contains(remoteHost(r)) {
				for _, header := range forwardingHeaders {
					r.Header.Del(header)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// proxyList são as redes dos proxies confiáveis
type proxyList []*net.IPNet

// parseProxies ignora entradas inválidas, que a validação da config já rejeita
func parseProxies(trusted []string) proxyList {
	proxies := make(proxyList, 0, len(trusted))
	for _, entry := range trusted {
		if network, err := ParseProxy(entry); err == nil {
			proxies = append(proxies, network)
		}
	}
	return proxies
}

// ParseProxy lê uma entrada de TRUSTED_PROXIES. Um IP simples vira uma faixa de um único host.
func ParseProxy(entry string) (*net.IPNet, error) {
	entry = strings.TrimSpace(entry)
	if strings.Contains(entry, "/") {
		_, network, err := net.ParseCIDR(entry)
		return network, err
	}

	ip := net.ParseIP(entry)
	if ip == nil {
		return nil, &net.ParseError{Type: "IP address", Text: entry}
	}
	bits := 8 * net.IPv6len
	if ip4 := ip.To4(); ip4 != nil {
		ip, bits = ip4, 8*net.IPv4len
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
}

// contains informa se host pertence a alguma rede confiável
func (p proxyList) contains(host string) bool {
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, network := range p {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// remoteHost é o IP do par TCP, sem a porta
func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
