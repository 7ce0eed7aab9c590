package remote

import "github.com/vovakirdan/vibe-snake/internal/highscore"

// Merge combines the local and remote tables. Entries whose name, score and
// date all match are kept once (first occurrence wins, local before remote);
// the rest is ranked by score and cut to the table capacity. An empty remote
// table leaves local untouched.
func Merge(local, remote highscore.Table) highscore.Table {
	if len(remote) == 0 {
		return local
	}

	seen := make(map[highscore.Entry]struct{}, len(local)+len(remote))
	combined := make(highscore.Table, 0, len(local)+len(remote))
	for _, t := range []highscore.Table{local, remote} {
		for _, e := range t {
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			combined = append(combined, e)
		}
	}
	return combined.Ranked()
}
