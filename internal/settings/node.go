package settings

import (
	"github.com/scylladb/cql-stress/internal/vocab"
)

// NodeOptions lists the contact points of the cluster.
type NodeOptions struct {
	Hosts      []string
	Datacenter string
	// Whitelist restricts connections to the listed hosts instead of
	// using them only for discovery.
	Whitelist bool
	// File, when set, names a file with one host per line.
	File string
}

func buildNodeSchema(voc *vocab.Vocabulary) *schema {
	return &schema{
		name: "-node",
		desc: "Cluster contact points",
		keys: []*keySpec{
			{key: "datacenter", op: "=", kind: kindWord,
				desc: "Consider only nodes of this datacenter"},
			{key: "whitelist", kind: kindFlag,
				desc: "Connect only to the listed hosts, skipping discovery"},
			{key: "file", op: "=", kind: kindWord,
				desc: "Read hosts from this file, one per line"},
		},
		positional: &keySpec{key: "hosts", kind: kindWordList, def: "localhost",
			desc: "Comma-separated host list, each with an optional :port"},
	}
}

func materializeNode(cfg *Configuration, got values, voc *vocab.Vocabulary) error {
	opts := NodeOptions{
		Hosts:      []string{"localhost"},
		Datacenter: got.word("datacenter=", ""),
		Whitelist:  got.flag("whitelist"),
		File:       got.word("file=", ""),
	}
	if x, ok := got["hosts"]; ok {
		opts.Hosts = x.([]string)
	}
	cfg.Node = opts
	return nil
}
