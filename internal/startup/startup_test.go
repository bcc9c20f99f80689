package startup

import "testing"

func TestPSQuote(t *testing.T) {
	tests := map[string]string{
		`C:\Program Files\sc.exe`: `'C:\Program Files\sc.exe'`,
		`C:\Users\O'Brien\x.exe`:  `'C:\Users\O''Brien\x.exe'`,
		``:                        `''`,
	}
	for in, want := range tests {
		if got := psQuote(in); got != want {
			t.Fatalf("psQuote(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestShortcutScript(t *testing.T) {
	got := shortcutScript(`C:\s\SimplyCapture.lnk`, `C:\O'x\sc.exe`)
	want := `$WshShell = New-Object -ComObject WScript.Shell; ` +
		`$Shortcut = $WshShell.CreateShortcut('C:\s\SimplyCapture.lnk'); ` +
		`$Shortcut.TargetPath = 'C:\O''x\sc.exe'; ` +
		`$Shortcut.Save()`
	if got != want {
		t.Fatalf("script =\n%s\nwant\n%s", got, want)
	}
}
