package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitShebang(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		shebang string
		body    string
	}{
		{"no shebang", "export default 1;\n", "", "export default 1;\n"},
		{"shebang", "#!/usr/bin/env node\nexport default 1;\n", "#!/usr/bin/env node\n", "export default 1;\n"},
		{"shebang only", "#!/usr/bin/env node", "#!/usr/bin/env node", ""},
		{"hash not at start", " #!/usr/bin/env node\n", "", " #!/usr/bin/env node\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shebang, body := SplitShebang(tt.text)
			assert.Equal(t, tt.shebang, shebang)
			assert.Equal(t, tt.body, body)
			assert.Equal(t, tt.text, shebang+body)
		})
	}
}
