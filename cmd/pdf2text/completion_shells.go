package main

import (
	"fmt"
	"io"
	"strings"
)

// commandNames lists the names of all commands in registry order.
func commandNames(commands []commandDef) []string {
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name)
	}
	return names
}

// flagSpellings lists every spelling of the given flags, long form first.
func flagSpellings(flags []flagDef) []string {
	spellings := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		spellings = append(spellings, "--"+f.Long)
		if f.Short != "" {
			spellings = append(spellings, "-"+f.Short)
		}
	}
	return spellings
}

// bashGlobFilter converts a comma-separated glob list into a compgen -X
// exclusion pattern that keeps matching files.
func bashGlobFilter(glob string) string {
	parts := strings.Split(glob, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		exts = append(exts, strings.TrimPrefix(p, "*."))
	}
	return "!*.@(" + strings.Join(exts, "|") + ")"
}

// zshFileGlob converts a comma-separated glob list into a zsh _files glob.
func zshFileGlob(glob string) string {
	parts := strings.Split(glob, ",")
	if len(parts) == 1 {
		return parts[0]
	}
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		exts = append(exts, strings.TrimPrefix(p, "*."))
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// generateBash writes a bash completion script to w.
func generateBash(w io.Writer) error {
	commands := getCommands()

	var b strings.Builder
	b.WriteString("# bash completion for pdf2text\n")
	b.WriteString("# Install: eval \"$(pdf2text completion bash)\"\n\n")

	b.WriteString("_pdf2text_completions() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")

	fmt.Fprintf(&b, "    local commands=\"%s\"\n\n", strings.Join(commandNames(commands), " "))

	// First word: a command name or a bare document path.
	b.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"$commands\" -- \"$cur\") )\n")
	b.WriteString("        COMPREPLY+=( $(compgen -f -X '!*.@(pdf)' -- \"$cur\") )\n")
	b.WriteString("        COMPREPLY+=( $(compgen -d -- \"$cur\") )\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")
	for _, cmd := range commands {
		switch cmd.Name {
		case "help":
			b.WriteString("    help)\n")
			b.WriteString("        COMPREPLY=( $(compgen -W \"$commands\" -- \"$cur\") )\n")
			b.WriteString("        return\n")
			b.WriteString("        ;;\n")
			continue
		case "completion":
			b.WriteString("    completion)\n")
			b.WriteString("        COMPREPLY=( $(compgen -W \"bash zsh fish powershell\" -- \"$cur\") )\n")
			b.WriteString("        return\n")
			b.WriteString("        ;;\n")
			continue
		}
		if len(cmd.Flags) == 0 && !cmd.TakesFiles {
			continue
		}

		fmt.Fprintf(&b, "    %s)\n", cmd.Name)

		// Value completion for flags that take a constrained argument.
		inCase := false
		for _, f := range cmd.Flags {
			if f.Type != flagEnum && f.Type != flagFile && f.Type != flagDir {
				continue
			}
			if !inCase {
				b.WriteString("        case \"$prev\" in\n")
				inCase = true
			}
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			fmt.Fprintf(&b, "        %s)\n", pattern)
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -f -X '%s' -- \"$cur\") )\n", bashGlobFilter(f.FileGlob))
			case flagDir:
				b.WriteString("            COMPREPLY=( $(compgen -d -- \"$cur\") )\n")
			}
			b.WriteString("            return\n")
			b.WriteString("            ;;\n")
		}
		if inCase {
			b.WriteString("        esac\n")
		}

		if len(cmd.Flags) > 0 {
			b.WriteString("        if [[ $cur == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(flagSpellings(cmd.Flags), " "))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}
		if cmd.TakesFiles {
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -f -X '%s' -- \"$cur\") )\n", bashGlobFilter(cmd.FilePattern))
			b.WriteString("        COMPREPLY+=( $(compgen -d -- \"$cur\") )\n")
		}
		b.WriteString("        return\n")
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")

	b.WriteString("complete -F _pdf2text_completions pdf2text\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshArgumentSpec renders one flag as a zsh _arguments spec.
func zshArgumentSpec(f flagDef) string {
	desc := strings.ReplaceAll(f.Desc, ":", "\\:")

	var spec string
	if f.Short != "" {
		spec = fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]", f.Short, f.Long, f.Short, f.Long, desc)
	} else {
		spec = fmt.Sprintf("'--%s[%s]", f.Long, desc)
	}

	switch f.Type {
	case flagBool:
		// flag takes no argument
	case flagEnum:
		spec += fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		spec += fmt.Sprintf(":file:_files -g \"%s\"", zshFileGlob(f.FileGlob))
	case flagDir:
		spec += ":directory:_files -/"
	default:
		spec += ":value:"
	}

	return spec + "'"
}

// generateZsh writes a zsh completion script to w.
func generateZsh(w io.Writer) error {
	commands := getCommands()

	var b strings.Builder
	b.WriteString("#compdef pdf2text\n")
	b.WriteString("# zsh completion for pdf2text\n\n")

	b.WriteString("_pdf2text() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "        '%s:%s'\n", cmd.Name, cmd.Desc)
	}
	b.WriteString("    )\n\n")

	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe -t commands 'pdf2text command' commands\n")
	b.WriteString("        _files -g '*.pdf'\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$words[2]\" in\n")
	for _, cmd := range commands {
		switch cmd.Name {
		case "help":
			b.WriteString("    help)\n")
			b.WriteString("        _describe -t commands 'pdf2text command' commands\n")
			b.WriteString("        ;;\n")
			continue
		case "completion":
			b.WriteString("    completion)\n")
			b.WriteString("        local -a shells\n")
			b.WriteString("        shells=(\n")
			b.WriteString("            'bash:Bash completion script'\n")
			b.WriteString("            'zsh:Zsh completion script'\n")
			b.WriteString("            'fish:Fish completion script'\n")
			b.WriteString("            'powershell:PowerShell completion script'\n")
			b.WriteString("        )\n")
			b.WriteString("        _describe -t shells 'shell' shells\n")
			b.WriteString("        ;;\n")
			continue
		}
		if len(cmd.Flags) == 0 && !cmd.TakesFiles {
			continue
		}

		specs := make([]string, 0, len(cmd.Flags)+1)
		for _, f := range cmd.Flags {
			specs = append(specs, zshArgumentSpec(f))
		}
		if cmd.TakesFiles {
			specs = append(specs, fmt.Sprintf("'*:document:_files -g \"%s\"'", cmd.FilePattern))
		}

		fmt.Fprintf(&b, "    %s)\n", cmd.Name)
		b.WriteString("        _arguments \\\n")
		for i, spec := range specs {
			sep := " \\\n"
			if i == len(specs)-1 {
				sep = "\n"
			}
			b.WriteString("            " + spec + sep)
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")

	b.WriteString("_pdf2text \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// generateFish writes a fish completion script to w.
func generateFish(w io.Writer) error {
	commands := getCommands()

	var b strings.Builder
	b.WriteString("# fish completion for pdf2text\n")
	b.WriteString("# Install: pdf2text completion fish > ~/.config/fish/completions/pdf2text.fish\n\n")

	b.WriteString("function __fish_pdf2text_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")

	b.WriteString("function __fish_pdf2text_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")

	for _, cmd := range commands {
		fmt.Fprintf(&b, "complete -c pdf2text -n __fish_pdf2text_needs_command -a %s -d '%s'\n", cmd.Name, cmd.Desc)
	}
	b.WriteString("\n")

	for _, cmd := range commands {
		for _, f := range cmd.Flags {
			line := fmt.Sprintf("complete -c pdf2text -n '__fish_pdf2text_using_command %s'", cmd.Name)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long
			fmt.Fprintf(&b, "%s -d '%s'", line, f.Desc)
			switch f.Type {
			case flagBool:
				// flag takes no argument
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagDir:
				b.WriteString(" -r -a '(__fish_complete_directories)'")
			default:
				b.WriteString(" -r")
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	names := strings.Join(commandNames(commands), " ")
	fmt.Fprintf(&b, "complete -c pdf2text -n '__fish_pdf2text_using_command help' -x -a '%s'\n", names)
	b.WriteString("complete -c pdf2text -n '__fish_pdf2text_using_command completion' -x -a 'bash zsh fish powershell'\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// psStringList renders values as a comma-separated list of quoted strings.
func psStringList(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, "'"+v+"'")
	}
	return strings.Join(quoted, ", ")
}

// generatePowerShell writes a PowerShell completion script to w.
func generatePowerShell(w io.Writer) error {
	commands := getCommands()

	var b strings.Builder
	b.WriteString("# powershell completion for pdf2text\n")
	b.WriteString("# Install: pdf2text completion powershell | Out-String | Invoke-Expression\n\n")

	b.WriteString("Register-ArgumentCompleter -Native -CommandName pdf2text -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = @(\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "        @{ Name = '%s'; Desc = '%s' }\n", cmd.Name, cmd.Desc)
	}
	b.WriteString("    )\n\n")

	for _, cmd := range commands {
		if len(cmd.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    $%sFlags = @(%s)\n", cmd.Name, psStringList(flagSpellings(cmd.Flags)))
	}
	b.WriteString("\n")

	b.WriteString("    $tokens = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n\n")

	b.WriteString("    if ($tokens.Count -le 1 -or ($tokens.Count -eq 2 -and $wordToComplete)) {\n")
	b.WriteString("        $commands | Where-Object { $_.Name -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterValue', $_.Desc)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $flags = @()\n")
	b.WriteString("    switch ($tokens[1]) {\n")
	for _, cmd := range commands {
		if len(cmd.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        '%s' { $flags = $%sFlags }\n", cmd.Name, cmd.Name)
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $flags | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
