// Command tutor-hash prints a stored password hash, for seeding user rows.
//
//	tutor-hash [-scheme sha256|bcrypt] [-cost n] [password]
//
// Without an argument the password is read from the first line of stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"git.sr.ht/~jakintosh/tutor/pkg/password"
)

func main() {
	schemeFlag := flag.String("scheme", string(password.SchemeSHA256), "hash scheme: sha256 or bcrypt")
	costFlag := flag.Int("cost", 0, "bcrypt cost (0 for default)")
	flag.Parse()

	if err := run(*schemeFlag, *costFlag, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "tutor-hash: %v\n", err)
		os.Exit(1)
	}
}

func run(schemeName string, cost int, args []string) error {
	scheme, err := password.ParseScheme(schemeName)
	if err != nil {
		return err
	}
	hasher, err := password.NewHasher(scheme, cost)
	if err != nil {
		return err
	}

	secret, err := readPassword(args)
	if err != nil {
		return err
	}

	hash, err := hasher.Hash(secret)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func readPassword(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("no password given: %v", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("empty password")
	}
	return line, nil
}
