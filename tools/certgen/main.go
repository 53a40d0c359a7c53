// Package main generates a development CA and a server certificate for
// running Postboard over HTTPS (TLS_CERT / TLS_KEY).
package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"flag"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/logger"
)

func main() {
	dir := flag.String("dir", "certs", "output directory")
	hosts := flag.String("hosts", "localhost,127.0.0.1", "comma-separated DNS names and IPs for the server certificate")
	days := flag.Int("days", 365, "server certificate validity in days")
	flag.Parse()

	log := logger.New()
	if err := log.Init("info"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(*dir, splitHosts(*hosts), *days); err != nil {
		log.Log.Fatal("certificate generation failed", zap.Error(err))
	}
	log.Log.Info("certificates generated",
		zap.String("cert", filepath.Join(*dir, "server.crt")),
		zap.String("key", filepath.Join(*dir, "server.key")),
	)
}

func run(dir string, hosts []string, days int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	caCert, caKey, err := generateCA()
	if err != nil {
		return fmt.Errorf("generate CA: %w", err)
	}
	if err := writeCertAndKey(filepath.Join(dir, "ca.crt"), filepath.Join(dir, "ca.key"), caCert, caKey); err != nil {
		return err
	}

	serverCert, serverKey, err := generateServerCert(hosts, days, caCert, caKey)
	if err != nil {
		return fmt.Errorf("generate server certificate: %w", err)
	}
	return writeCertAndKey(filepath.Join(dir, "server.crt"), filepath.Join(dir, "server.key"), serverCert, serverKey)
}

func splitHosts(s string) []string {
	var out []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}

func serial() (*big.Int, error) {
	return rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
}

// generateCA creates a self-signed CA valid for 10 years.
func generateCA() (*x509.Certificate, *ecdsa.PrivateKey, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	sn, err := serial()
	if err != nil {
		return nil, nil, err
	}
	tmpl := &x509.Certificate{
		SerialNumber:          sn,
		Subject:               pkix.Name{CommonName: "Postboard Dev CA", Organization: []string{"Postboard"}},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().AddDate(10, 0, 0),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		return nil, nil, err
	}
	cert, err := x509.ParseCertificate(der)
	return cert, key, err
}

// generateServerCert issues a TLS server certificate for hosts, signed by the CA.
// Entries that parse as IP addresses become IP SANs, the rest DNS SANs.
func generateServerCert(hosts []string, days int, ca *x509.Certificate, caKey *ecdsa.PrivateKey) (*x509.Certificate, *ecdsa.PrivateKey, error) {
	if len(hosts) == 0 {
		return nil, nil, fmt.Errorf("no hosts given")
	}
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	sn, err := serial()
	if err != nil {
		return nil, nil, err
	}
	tmpl := &x509.Certificate{
		SerialNumber:          sn,
		Subject:               pkix.Name{CommonName: hosts[0]},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().AddDate(0, 0, days),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			tmpl.IPAddresses = append(tmpl.IPAddresses, ip)
		} else {
			tmpl.DNSNames = append(tmpl.DNSNames, h)
		}
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, ca, &key.PublicKey, caKey)
	if err != nil {
		return nil, nil, err
	}
	cert, err := x509.ParseCertificate(der)
	return cert, key, err
}

// writeCertAndKey PEM-encodes the certificate and the PKCS#8 key. The key
// file is readable by the owner only.
func writeCertAndKey(certPath, keyPath string, cert *x509.Certificate, key *ecdsa.PrivateKey) error {
	if err := os.WriteFile(certPath, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw}), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", certPath, err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(keyPath, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", keyPath, err)
	}
	return nil
}
