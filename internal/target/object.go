package target

import (
	"debug/elf"
	"debug/macho"
	"debug/pe"
)

// FromELF derives the target from an ELF header. Android binaries are
// recognised by their .note.android.ident section.
func FromELF(f *elf.File) Target {
	t := Target{}
	switch f.Machine {
	case elf.EM_386:
		t.Arch = ArchX86
	case elf.EM_X86_64:
		t.Arch = ArchX86_64
	case elf.EM_ARM:
		t.Arch = ArchARM
	case elf.EM_AARCH64:
		t.Arch = ArchAArch64
	case elf.EM_RISCV:
		t.Arch = ArchRISCV64
		if f.Class == elf.ELFCLASS32 {
			t.Arch = ArchRISCV32
		}
	case elf.EM_PPC:
		t.Arch = ArchPPC
	case elf.EM_PPC64:
		t.Arch = ArchPPC64
	case elf.EM_MIPS:
		t.Arch = ArchMIPS
		if f.Class == elf.ELFCLASS64 {
			t.Arch = ArchMIPS64
		}
	case elf.EM_S390:
		t.Arch = ArchS390X
	}

	switch f.OSABI {
	case elf.ELFOSABI_FREEBSD:
		t.OS = OSFreeBSD
	case elf.ELFOSABI_NETBSD:
		t.OS = OSNetBSD
	case elf.ELFOSABI_OPENBSD:
		t.OS = OSOpenBSD
	default:
		t.OS = OSLinux
		t.Env = EnvGNU
		if f.Section(".note.android.ident") != nil {
			t.Env = EnvAndroid
		}
	}
	return t
}

// FromMachO derives the target from a Mach-O header.
func FromMachO(f *macho.File) Target {
	t := Target{Vendor: "apple", OS: OSDarwin}
	switch f.Cpu {
	case macho.Cpu386:
		t.Arch = ArchX86
	case macho.CpuAmd64:
		t.Arch = ArchX86_64
	case macho.CpuArm:
		t.Arch = ArchARM
	case macho.CpuArm64:
		t.Arch = ArchAArch64
	case macho.CpuPpc:
		t.Arch = ArchPPC
	case macho.CpuPpc64:
		t.Arch = ArchPPC64
	}
	return t
}

// FromPE derives the target from a PE/COFF header. PE images are assumed to
// follow the MSVC ABI unless they carry MinGW's .CRT section layout.
func FromPE(f *pe.File) Target {
	t := Target{Vendor: "pc", OS: OSWindows, Env: EnvMSVC}
	switch f.Machine {
	case pe.IMAGE_FILE_MACHINE_I386:
		t.Arch = ArchX86
	case pe.IMAGE_FILE_MACHINE_AMD64:
		t.Arch = ArchX86_64
	case pe.IMAGE_FILE_MACHINE_ARMNT:
		t.Arch = ArchARM
	case pe.IMAGE_FILE_MACHINE_ARM64:
		t.Arch = ArchAArch64
	}
	if f.Section(".CRT") != nil && f.Section(".debug_info") != nil {
		t.Env = EnvGNU
	}
	return t
}
