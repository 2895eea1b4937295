package target

import (
	"fmt"
	"runtime"
	"strings"
)

// Arch is a CPU family.
type Arch int

const (
	ArchUnknown Arch = iota
	ArchX86
	ArchX86_64
	ArchARM
	ArchAArch64
	ArchRISCV32
	ArchRISCV64
	ArchPPC
	ArchPPC64
	ArchMIPS
	ArchMIPS64
	ArchS390X
	ArchWasm32
	ArchWasm64
	ArchMSP430
	ArchAVR
)

var archNames = map[Arch]string{
	ArchUnknown: "unknown",
	ArchX86:     "i386",
	ArchX86_64:  "x86_64",
	ArchARM:     "arm",
	ArchAArch64: "aarch64",
	ArchRISCV32: "riscv32",
	ArchRISCV64: "riscv64",
	ArchPPC:     "powerpc",
	ArchPPC64:   "powerpc64",
	ArchMIPS:    "mips",
	ArchMIPS64:  "mips64",
	ArchS390X:   "s390x",
	ArchWasm32:  "wasm32",
	ArchWasm64:  "wasm64",
	ArchMSP430:  "msp430",
	ArchAVR:     "avr",
}

func (a Arch) String() string {
	if name, ok := archNames[a]; ok {
		return name
	}
	return fmt.Sprintf("arch(%d)", int(a))
}

// BitWidth returns the address width class of the architecture: 16, 32 or 64.
// Zero means the class is not known.
func (a Arch) BitWidth() uint {
	switch a {
	case ArchMSP430, ArchAVR:
		return 16
	case ArchX86, ArchARM, ArchRISCV32, ArchPPC, ArchMIPS, ArchWasm32:
		return 32
	case ArchX86_64, ArchAArch64, ArchRISCV64, ArchPPC64, ArchMIPS64, ArchS390X, ArchWasm64:
		return 64
	default:
		return 0
	}
}

// OS is an operating system family.
type OS int

const (
	OSUnknown OS = iota
	OSLinux
	OSDarwin
	OSMacOSX
	OSIOS
	OSTvOS
	OSWatchOS
	OSWindows
	OSFreeBSD
	OSNetBSD
	OSOpenBSD
	OSWASI
)

var osNames = map[OS]string{
	OSUnknown: "unknown",
	OSLinux:   "linux",
	OSDarwin:  "darwin",
	OSMacOSX:  "macosx",
	OSIOS:     "ios",
	OSTvOS:    "tvos",
	OSWatchOS: "watchos",
	OSWindows: "windows",
	OSFreeBSD: "freebsd",
	OSNetBSD:  "netbsd",
	OSOpenBSD: "openbsd",
	OSWASI:    "wasi",
}

func (o OS) String() string {
	if name, ok := osNames[o]; ok {
		return name
	}
	return fmt.Sprintf("os(%d)", int(o))
}

// Env is the ABI/environment component of a triple.
type Env int

const (
	EnvUnknown Env = iota
	EnvGNU
	EnvGNUEABI
	EnvGNUEABIHF
	EnvEABI
	EnvMSVC
	EnvAndroid
	EnvMusl
	EnvCygnus
	EnvItanium
)

var envNames = map[Env]string{
	EnvUnknown:   "",
	EnvGNU:       "gnu",
	EnvGNUEABI:   "gnueabi",
	EnvGNUEABIHF: "gnueabihf",
	EnvEABI:      "eabi",
	EnvMSVC:      "msvc",
	EnvAndroid:   "android",
	EnvMusl:      "musl",
	EnvCygnus:    "cygnus",
	EnvItanium:   "itanium",
}

func (e Env) String() string {
	if name, ok := envNames[e]; ok {
		return name
	}
	return fmt.Sprintf("env(%d)", int(e))
}

// Target is an architecture + OS + environment triple.
type Target struct {
	Arch   Arch
	Vendor string
	OS     OS
	Env    Env
}

// String renders the target as an LLVM-style triple.
func (t Target) String() string {
	vendor := t.Vendor
	if vendor == "" {
		vendor = "unknown"
	}
	parts := []string{t.Arch.String(), vendor, t.OS.String()}
	if t.Env != EnvUnknown {
		parts = append(parts, t.Env.String())
	}
	return strings.Join(parts, "-")
}

// BitWidth returns the address width class (16, 32, 64) or 0 when unknown.
func (t Target) BitWidth() uint { return t.Arch.BitWidth() }

// IsX86 reports whether the target is any x86 flavour (32- or 64-bit).
func (t Target) IsX86() bool { return t.Arch == ArchX86 || t.Arch == ArchX86_64 }

// IsDarwinFamily reports whether the OS is one of Apple's Darwin-based systems.
func (t Target) IsDarwinFamily() bool {
	switch t.OS {
	case OSDarwin, OSMacOSX, OSIOS, OSTvOS, OSWatchOS:
		return true
	}
	return false
}

// IsWindowsMSVC reports whether the target uses the MSVC ABI. A Windows
// triple without an explicit environment defaults to MSVC.
func (t Target) IsWindowsMSVC() bool {
	return t.OS == OSWindows && (t.Env == EnvMSVC || t.Env == EnvUnknown)
}

// IsAndroid reports whether the environment is Android.
func (t Target) IsAndroid() bool { return t.Env == EnvAndroid }

// Host returns the target dtypes itself was built for.
func Host() Target {
	return fromGo(runtime.GOARCH, runtime.GOOS)
}

func fromGo(goarch, goos string) Target {
	t := Target{}
	switch goarch {
	case "386":
		t.Arch = ArchX86
	case "amd64":
		t.Arch = ArchX86_64
	case "arm":
		t.Arch = ArchARM
	case "arm64":
		t.Arch = ArchAArch64
	case "riscv64":
		t.Arch = ArchRISCV64
	case "ppc64", "ppc64le":
		t.Arch = ArchPPC64
	case "mips", "mipsle":
		t.Arch = ArchMIPS
	case "mips64", "mips64le":
		t.Arch = ArchMIPS64
	case "s390x":
		t.Arch = ArchS390X
	case "wasm":
		t.Arch = ArchWasm32
	}

	switch goos {
	case "linux":
		t.OS, t.Env = OSLinux, EnvGNU
	case "android":
		t.OS, t.Env = OSLinux, EnvAndroid
	case "darwin":
		t.OS, t.Vendor = OSDarwin, "apple"
	case "ios":
		t.OS, t.Vendor = OSIOS, "apple"
	case "windows":
		t.OS, t.Vendor, t.Env = OSWindows, "pc", EnvMSVC
	case "freebsd":
		t.OS = OSFreeBSD
	case "netbsd":
		t.OS = OSNetBSD
	case "openbsd":
		t.OS = OSOpenBSD
	case "wasip1":
		t.OS = OSWASI
	}
	return t
}
