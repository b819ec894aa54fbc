package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/BootforgeIO/bootforge/internal/bootstrap"
)

func main() {
	platform := flag.String("platform", "", "target platform id (see -list)")
	privKey := flag.String("priv-key", "", "path to the minion private key")
	pubKey := flag.String("pub-key", "", "path to the minion public key")
	configPath := flag.String("config", "", "path to the minion config; may reference {{private_key}} and {{public_key}}")
	master := flag.String("master", "", "render a minimal 'master: <addr>' config when -config is omitted")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall run timeout")
	dryRun := flag.Bool("dry-run", false, "print the resolved steps without mutating the host")
	list := flag.Bool("list", false, "list supported platforms and exit")
	flag.Parse()

	if *list {
		for _, p := range bootstrap.Profiles() {
			fmt.Printf("%-14s family=%-8s service=%-12s conf=%s\n", p.ID, p.Family, p.ServiceName, p.ConfDir)
		}
		return
	}

	if *platform == "" {
		fail(&bootstrap.ConfigError{Reason: "-platform is required"})
	}
	profile, ok := bootstrap.Profile(*platform)
	if !ok {
		fail(&bootstrap.ConfigError{Reason: fmt.Sprintf("unknown platform %q, try -list", *platform)})
	}

	if *dryRun {
		for i, s := range profile.Steps {
			switch s.Kind {
			case bootstrap.StepRunCommand:
				fmt.Printf("%2d %-22s %s %s\n", i, s.Name, s.Kind, strings.Join(s.Cmd, " "))
			default:
				fmt.Printf("%2d %-22s %s %s\n", i, s.Name, s.Kind, s.Path)
			}
		}
		return
	}

	secrets, err := loadSecrets(*privKey, *pubKey, *configPath, *master)
	if err != nil {
		fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	ex := bootstrap.New(bootstrap.NewHostSystem())
	res, err := ex.Bootstrap(ctx, *platform, secrets)
	for _, step := range res.Steps {
		log.Printf("step %d %-22s %s", step.Index, step.Name, step.Status)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap failed: %v\n", err)
		if res.FailingStep >= 0 && res.FailingStep < len(res.Steps) {
			if out := res.Steps[res.FailingStep].Output; out != "" {
				fmt.Fprintln(os.Stderr, out)
			}
		}
		os.Exit(bootstrap.ExitCode(err))
	}
	log.Printf("bootstrap succeeded: platform=%s steps=%d mutations=%d", res.Platform, len(res.Steps), res.Mutations())
}

func loadSecrets(privPath, pubPath, configPath, master string) (*bootstrap.Secrets, error) {
	if privPath == "" || pubPath == "" {
		return nil, &bootstrap.ConfigError{Reason: "-priv-key and -pub-key are required"}
	}
	priv, err := os.ReadFile(privPath)
	if err != nil {
		return nil, &bootstrap.ConfigError{Reason: fmt.Sprintf("read private key: %v", err)}
	}
	pub, err := os.ReadFile(pubPath)
	if err != nil {
		return nil, &bootstrap.ConfigError{Reason: fmt.Sprintf("read public key: %v", err)}
	}

	s := &bootstrap.Secrets{PrivateKey: priv, PublicKey: pub}
	switch {
	case configPath != "":
		raw, err := os.ReadFile(configPath)
		if err != nil {
			return nil, &bootstrap.ConfigError{Reason: fmt.Sprintf("read config: %v", err)}
		}
		// Resolve key placeholders in a user-supplied config template.
		s.MinionConfig = s.Expand(string(raw))
	case master != "":
		s.MinionConfig = "master: " + master + "\n"
	default:
		return nil, &bootstrap.ConfigError{Reason: "one of -config or -master is required"}
	}
	return s, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(bootstrap.ExitCode(err))
}
