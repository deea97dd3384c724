// Command argon2 is a command-line front end for the Argon2 password
// hashing function. It reads the password from standard input and takes
// the salt as its sole positional argument:
//
//	argon2 salt [-i|-d|-id] [-t iterations] [-m log2(memory in KiB) | -k memory in KiB]
//	            [-p parallelism] [-l hash length] [-e|-r] [-v (10|13)]
//
// By default it prints the parameters, the tag in hex, the encoded hash,
// the elapsed time, and the result of a self-verification. With -e only
// the encoded hash is printed; with -r the raw tag bytes are written to
// standard output.
package main

import (
	stdflag "flag"
	"fmt"
	"os"
	"time"

	"rsc.io/getopt"

	argon2 "github.com/opd-ai/go-argon2"
)

var flag = getopt.NewFlagSet("argon2", stdflag.ExitOnError)

var (
	iFlag  = flag.Bool("i", false, "use Argon2i (this is the default)")
	dFlag  = flag.Bool("d", false, "use Argon2d instead of Argon2i")
	idFlag = flag.Bool("id", false, "use Argon2id instead of Argon2i")
	tFlag  = flag.Uint("t", 3, "number of iterations")
	mFlag  = flag.Uint("m", 12, "memory usage of 2^N KiB")
	kFlag  = flag.Uint("k", 0, "memory usage of N KiB")
	pFlag  = flag.Uint("p", 1, "parallelism")
	lFlag  = flag.Uint("l", 32, "hash output length in bytes")
	eFlag  = flag.Bool("e", false, "output only encoded hash")
	rFlag  = flag.Bool("r", false, "output only the raw bytes of the hash")
	vFlag  = flag.Uint("v", 13, "argon2 version (10 or 13)")
)

func init() {
	flag.Usage = func() {
		w := flag.Output()
		fmt.Fprintf(w, "Usage:  argon2 [-h] salt [-i|-d|-id] [-t iterations] [-m log2(memory in KiB) | -k memory in KiB] [-p parallelism] [-l hash length] [-e|-r] [-v (10|13)]\n")
		flag.PrintDefaults()
	}
}

// valueFlags take an argument, which matters when pulling the positional
// salt out of an argument list with flags on both sides of it.
var valueFlags = map[string]bool{
	"-t": true, "-m": true, "-k": true, "-p": true, "-l": true, "-v": true,
}

// splitArgs rewrites the non-standard -id flag (which collides with short
// flag clustering) to --id and separates the positional salt from the
// flags, so the salt may appear before, between, or after them.
func splitArgs(args []string) (salt string, flags []string, err error) {
	saltSeen := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "-id" {
			arg = "--id"
		}
		if len(arg) > 0 && arg[0] == '-' && arg != "-" {
			flags = append(flags, arg)
			if valueFlags[arg] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
			continue
		}
		if saltSeen {
			return "", nil, fmt.Errorf("unexpected argument %q", arg)
		}
		salt, saltSeen = arg, true
	}
	if !saltSeen {
		return "", nil, fmt.Errorf("missing salt argument")
	}
	return salt, flags, nil
}

// exclusive verifies that at most one of a group of boolean flags is set.
func exclusive(group string, set ...bool) error {
	n := 0
	for _, s := range set {
		if s {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("flags %s are mutually exclusive", group)
	}
	return nil
}

func buildParams() (argon2.Params, error) {
	var p argon2.Params

	if err := exclusive("-i, -d, -id", *iFlag, *dFlag, *idFlag); err != nil {
		return p, err
	}
	if err := exclusive("-e, -r", *eFlag, *rFlag); err != nil {
		return p, err
	}

	switch {
	case *dFlag:
		p.Variant = argon2.VariantD
	case *idFlag:
		p.Variant = argon2.VariantID
	default:
		p.Variant = argon2.VariantI
	}

	switch *vFlag {
	case 10:
		p.Version = argon2.Version10
	case 13:
		p.Version = argon2.Version13
	default:
		return p, fmt.Errorf("unsupported version %d (want 10 or 13)", *vFlag)
	}

	kSet, mSet := false, false
	flag.Visit(func(f *stdflag.Flag) {
		switch f.Name {
		case "k":
			kSet = true
		case "m":
			mSet = true
		}
	})
	if kSet && mSet {
		return p, fmt.Errorf("flags -m, -k are mutually exclusive")
	}
	if kSet {
		p.Memory = uint32(*kFlag)
	} else {
		if *mFlag >= 32 {
			return p, fmt.Errorf("memory exponent %d out of range", *mFlag)
		}
		p.Memory = 1 << *mFlag
	}

	p.Time = uint32(*tFlag)
	p.Parallelism = uint32(*pFlag)
	p.KeyLength = uint32(*lFlag)
	return p, nil
}

// typeName renders the variant the way the reference CLI spells it.
func typeName(v argon2.Variant) string {
	switch v {
	case argon2.VariantD:
		return "Argon2d"
	case argon2.VariantID:
		return "Argon2id"
	default:
		return "Argon2i"
	}
}

func run() error {
	salt, flagArgs, err := splitArgs(os.Args[1:])
	if err != nil {
		return err
	}
	if err := flag.Parse(flagArgs); err != nil {
		return err
	}

	params, err := buildParams()
	if err != nil {
		return err
	}

	password, err := readPassword()
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	start := time.Now()
	tag, err := argon2.Key(password, []byte(salt), params)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	encoded, err := argon2.Encode(params, []byte(salt), tag)
	if err != nil {
		return err
	}

	switch {
	case *eFlag:
		fmt.Println(encoded)
	case *rFlag:
		if _, err := os.Stdout.Write(tag); err != nil {
			return err
		}
	default:
		fmt.Printf("Type:           %s\n", typeName(params.Variant))
		fmt.Printf("Iterations:     %d\n", params.Time)
		fmt.Printf("Memory:         %d KiB\n", params.Memory)
		fmt.Printf("Parallelism:    %d\n", params.Parallelism)
		fmt.Printf("Hash:           %x\n", tag)
		fmt.Printf("Encoded:        %s\n", encoded)
		fmt.Printf("%.3f seconds\n", elapsed.Seconds())

		ok, err := argon2.Verify(encoded, password)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("verification failed")
		}
		fmt.Println("Verification ok")
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
