// Package appfs embeds the static files shipped with the binaries: SQL migrations, email templates
// and the common passwords list.
package appfs

import "embed"

//go:embed migrations/*.sql assets/templates/email/* assets/common-passwords.txt
var FS embed.FS
