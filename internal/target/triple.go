package target

import (
	"fmt"
	"strings"
)

// ParseTriple parses an LLVM-style triple such as "x86_64-pc-linux-gnu",
// "aarch64-apple-darwin21.1" or "x86_64-linux-android". The vendor component
// is optional. Unrecognised OS or environment components are left unknown;
// an unrecognised architecture is an error.
func ParseTriple(triple string) (Target, error) {
	triple = strings.TrimSpace(strings.ToLower(triple))
	if triple == "" {
		return Target{}, fmt.Errorf("empty target triple")
	}

	parts := strings.Split(triple, "-")
	t := Target{Arch: parseArch(parts[0])}
	if t.Arch == ArchUnknown {
		return Target{}, fmt.Errorf("unknown architecture %q in triple %q", parts[0], triple)
	}

	for _, part := range parts[1:] {
		if t.OS == OSUnknown {
			if os := parseOS(part); os != OSUnknown {
				t.OS = os
				if strings.HasPrefix(part, "mingw") && t.Env == EnvUnknown {
					t.Env = EnvGNU
				}
				continue
			}
		}
		if t.Env == EnvUnknown {
			if env := parseEnv(part); env != EnvUnknown {
				t.Env = env
				continue
			}
		}
		if t.Vendor == "" && t.OS == OSUnknown {
			t.Vendor = part
		}
	}

	return t, nil
}

// MustParseTriple is ParseTriple for constant triples in tables and tests.
func MustParseTriple(triple string) Target {
	t, err := ParseTriple(triple)
	if err != nil {
		panic(err)
	}
	return t
}

func parseArch(s string) Arch {
	switch {
	case s == "x86_64" || s == "amd64":
		return ArchX86_64
	case s == "x86" || (len(s) == 4 && s[0] == 'i' && strings.HasSuffix(s, "86")):
		return ArchX86
	case s == "aarch64" || s == "arm64" || s == "aarch64_be":
		return ArchAArch64
	case strings.HasPrefix(s, "arm") || strings.HasPrefix(s, "thumb"):
		return ArchARM
	case s == "riscv32":
		return ArchRISCV32
	case s == "riscv64":
		return ArchRISCV64
	case s == "powerpc64" || s == "powerpc64le" || s == "ppc64" || s == "ppc64le":
		return ArchPPC64
	case s == "powerpc" || s == "ppc":
		return ArchPPC
	case s == "mips64" || s == "mips64el":
		return ArchMIPS64
	case s == "mips" || s == "mipsel":
		return ArchMIPS
	case s == "s390x" || s == "systemz":
		return ArchS390X
	case s == "wasm32":
		return ArchWasm32
	case s == "wasm64":
		return ArchWasm64
	case s == "msp430":
		return ArchMSP430
	case s == "avr":
		return ArchAVR
	}
	return ArchUnknown
}

// OS components may carry a version suffix (darwin21.1, macosx10.15, ios13.0).
func parseOS(s string) OS {
	prefixes := []struct {
		prefix string
		os     OS
	}{
		{"linux", OSLinux},
		{"darwin", OSDarwin},
		{"macosx", OSMacOSX},
		{"macos", OSMacOSX},
		{"ios", OSIOS},
		{"tvos", OSTvOS},
		{"watchos", OSWatchOS},
		{"windows", OSWindows},
		{"win32", OSWindows},
		{"mingw32", OSWindows},
		{"freebsd", OSFreeBSD},
		{"netbsd", OSNetBSD},
		{"openbsd", OSOpenBSD},
		{"wasi", OSWASI},
	}
	for _, p := range prefixes {
		if strings.HasPrefix(s, p.prefix) {
			return p.os
		}
	}
	return OSUnknown
}

func parseEnv(s string) Env {
	switch {
	case strings.HasPrefix(s, "gnueabihf"):
		return EnvGNUEABIHF
	case strings.HasPrefix(s, "gnueabi"):
		return EnvGNUEABI
	case strings.HasPrefix(s, "gnu"):
		return EnvGNU
	case strings.HasPrefix(s, "eabi"):
		return EnvEABI
	case strings.HasPrefix(s, "msvc"):
		return EnvMSVC
	case strings.HasPrefix(s, "android"):
		return EnvAndroid
	case strings.HasPrefix(s, "musl"):
		return EnvMusl
	case strings.HasPrefix(s, "cygnus"):
		return EnvCygnus
	case strings.HasPrefix(s, "itanium"):
		return EnvItanium
	}
	return EnvUnknown
}
