package bundler

import (
	"github.com/leapstack-labs/docbundle/internal/siteconfig"
	"github.com/leapstack-labs/docbundle/internal/validate"
)

// Remediation text. Every anticipated failure prints what is wrong and
// what the author must change before a bundle can be produced.

func (b *Bundler) helpOnBadCwd(workDir, configDir string) {
	e := b.renderer.Styles().Error
	b.renderer.Println(e.Render("  The current working directory:"))
	b.renderer.Printf("    %s\n", workDir)
	b.renderer.Println(e.Render("  is not a parent of the config file directory:"))
	b.renderer.Printf("    %s\n\n", configDir)
	b.renderer.Println("  To assure that all project files are found, please run")
	b.renderer.Println("  docbundle in the actual root directory of the project.")
	b.renderer.Println("")
	b.renderer.Println("  You can also set the config option `root_dir` with a")
	b.renderer.Println("  relative path to the actual root directory.")
}

func (b *Bundler) helpOnBadPaths(workDir string, violations validate.Violations) {
	e := b.renderer.Styles().Error
	outside, missing := violations.Partition()
	if len(outside) > 0 {
		b.renderer.Println(e.Render("  The current working (root) directory:"))
		b.renderer.Printf("    %s\n", workDir)
		b.renderer.Println(e.Render("  is not a parent of the following paths:"))
		for _, path := range outside {
			b.renderer.Printf("    %s\n", path)
		}
		b.renderer.Println("")
	}
	if len(missing) > 0 {
		b.renderer.Println(e.Render("  The following files don't exist:"))
		for _, path := range missing {
			b.renderer.Printf("    %s\n", path)
		}
		b.renderer.Println("")
	}
	b.renderer.Println("  To assure that all project files are found, please")
	b.renderer.Println("  adjust your config or file structure and put everything")
	b.renderer.Println("  within the root directory of the project.")
}

func (b *Bundler) helpOnBadExtensions(workDir string, exts []siteconfig.ExtensionPath) {
	e := b.renderer.Styles().Error
	b.renderer.Println(e.Render("  The following markdown_extensions paths are outside"))
	b.renderer.Println(e.Render("  the root directory or don't exist:"))
	for _, ext := range exts {
		b.renderer.Printf("    %s:%s: %s\n", ext.Extension, ext.Option, ext.Path)
	}
	b.renderer.Println("")
	b.renderer.Println("  To assure that all project files are found, please")
	b.renderer.Println("  adjust your config or file structure and put everything")
	b.renderer.Printf("  within the root directory: %s\n", workDir)
}

func (b *Bundler) helpOnVersions(have, need string) {
	b.renderer.Println("  When reporting issues, please first upgrade to the latest")
	b.renderer.Println("  version of docbundle, as the problem might already be")
	b.renderer.Println("  fixed in the latest version. This helps reduce duplicate")
	b.renderer.Println("  efforts and saves us maintainers time.")
	b.renderer.Println("")
	b.renderer.Printf("  Please update from %s to %s:\n\n", have, need)
	b.renderer.Println("    go install github.com/leapstack-labs/docbundle/cmd/docbundle@latest")
}

func (b *Bundler) helpOnCustomizations() {
	w := b.renderer.Styles().Warning
	b.renderer.Println("  When reporting issues, you must remove all customizations")
	b.renderer.Println("  and check if the problem persists. If not, the problem is")
	b.renderer.Println("  caused by your overrides. Please understand that we can't")
	b.renderer.Println("  help you debug your customizations. Please remove:")
	b.renderer.Println("")
	b.renderer.Println("  - theme.custom_dir")
	b.renderer.Println("  - hooks")
	b.renderer.Println("")
	b.renderer.Println(w.Render("  Additionally, please remove all third-party JavaScript"))
	b.renderer.Println(w.Render("  or CSS not explicitly mentioned in our documentation:"))
	b.renderer.Println("")
	b.renderer.Println("  - extra_css")
	b.renderer.Println("  - extra_javascript")
}
