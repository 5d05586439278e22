package acquisition

import "path/filepath"

// ResolvePath gets user and experiment name from the experiment number dir holding acqus:
//
//	/u/data/ maxim /nmr/ CT3nk   /1/acqus
//	         User        Expname
//
// Missing levels leave the result empty.
func ResolvePath(expnoDir string) (user, experiment string) {
	expnameDir, ok := parentDir(expnoDir)
	if !ok {
		return
	}
	experiment = baseName(expnameDir)

	nmrDir, ok := parentDir(expnameDir)
	if !ok {
		return
	}
	userDir, ok := parentDir(nmrDir)
	if !ok {
		return
	}
	user = baseName(userDir)
	return
}

func parentDir(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	p = filepath.Clean(p)
	d := filepath.Dir(p)
	if d == p || d == "." {
		return "", false
	}
	return d, true
}

func baseName(p string) string {
	b := filepath.Base(p)
	if b == "." || b == string(filepath.Separator) {
		return ""
	}
	return b
}
