package settings

import (
	"strings"

	"github.com/scylladb/cql-stress/internal/vocab"
)

// TransportOptions carries the TLS settings of the connection. All fields
// are optional; an all-zero value means plaintext transport.
type TransportOptions struct {
	Factory            string
	Truststore         string
	TruststorePassword string
	Keystore           string
	KeystorePassword   string
	SSLProtocol        string
	SSLAlg             string
	StoreType          string
	SSLCiphers         string
	// HostnameVerification is nil when the driver default applies.
	HostnameVerification *bool
}

func buildTransportSchema(voc *vocab.Vocabulary) *schema {
	return &schema{
		name: "-transport",
		desc: "TLS transport options",
		keys: []*keySpec{
			{key: "factory", op: "=", kind: kindWord,
				desc: "Fully-qualified transport factory class, accepted for compatibility"},
			{key: "truststore", op: "=", kind: kindWord,
				desc: "Path of the CA certificate store"},
			{key: "truststore-password", op: "=", kind: kindWord,
				desc: "Password of the CA certificate store"},
			{key: "keystore", op: "=", kind: kindWord,
				desc: "Path of the client certificate store"},
			{key: "keystore-password", op: "=", kind: kindWord,
				desc: "Password of the client certificate store"},
			{key: "ssl-protocol", op: "=", kind: kindWord,
				desc: "TLS protocol version to negotiate"},
			{key: "ssl-alg", op: "=", kind: kindWord,
				desc: "Key exchange algorithm"},
			{key: "store-type", op: "=", kind: kindWord,
				desc: "Format of the certificate stores"},
			{key: "ssl-ciphers", op: "=", kind: kindWordList,
				desc: "Comma-separated cipher suites to permit"},
			{key: "hostname-verification", op: "=", kind: kindBool,
				desc: "Verify that the server certificate matches the host"},
		},
	}
}

func materializeTransport(cfg *Configuration, got values, voc *vocab.Vocabulary) error {
	opts := TransportOptions{
		Factory:            got.word("factory=", ""),
		Truststore:         got.word("truststore=", ""),
		TruststorePassword: got.word("truststore-password=", ""),
		Keystore:           got.word("keystore=", ""),
		KeystorePassword:   got.word("keystore-password=", ""),
		SSLProtocol:        got.word("ssl-protocol=", ""),
		SSLAlg:             got.word("ssl-alg=", ""),
		StoreType:          got.word("store-type=", ""),
	}
	if x, ok := got["ssl-ciphers="]; ok {
		opts.SSLCiphers = strings.Join(x.([]string), ",")
	}
	if x, ok := got["hostname-verification="]; ok {
		b := x.(bool)
		opts.HostnameVerification = &b
	}
	cfg.Transport = opts
	return nil
}
