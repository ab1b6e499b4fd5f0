package spec

import (
	"path"
	"strings"
)

// Audience selects which of the three spec documents a platform reads.
type Audience string

const (
	AudienceClient  Audience = "client"
	AudienceServer  Audience = "server"
	AudienceConsole Audience = "console"
)

const (
	PlatformClientWeb           = "client-web"
	PlatformClientFlutter       = "client-flutter"
	PlatformClientApple         = "client-apple"
	PlatformClientAndroidKotlin = "client-android-kotlin"
	PlatformClientAndroidJava   = "client-android-java"
	PlatformClientReactNative   = "client-react-native"
	PlatformClientGraphQL       = "client-graphql"
	PlatformClientREST          = "client-rest"
	PlatformServerNodeJS        = "server-nodejs"
	PlatformServerDeno          = "server-deno"
	PlatformServerPHP           = "server-php"
	PlatformServerPython        = "server-python"
	PlatformServerRuby          = "server-ruby"
	PlatformServerDart          = "server-dart"
	PlatformServerKotlin        = "server-kotlin"
	PlatformServerJava          = "server-java"
	PlatformServerSwift         = "server-swift"
	PlatformServerDotNet        = "server-dotnet"
	PlatformServerGraphQL       = "server-graphql"
	PlatformServerREST          = "server-rest"
	PlatformConsoleWeb          = "console-web"
	PlatformConsoleCLI          = "console-cli"
)

const (
	specsDir    = "app/config/specs"
	examplesDir = "docs/examples"
)

// AudienceFor maps a platform identifier to its spec audience. Anything that
// is neither a client nor a server platform reads the console spec.
func AudienceFor(platform string) Audience {
	switch {
	case strings.HasPrefix(platform, "server-"):
		return AudienceServer
	case strings.HasPrefix(platform, "client-"):
		return AudienceClient
	default:
		return AudienceConsole
	}
}

// SpecPath returns the asset path of the spec document for version/platform.
func SpecPath(version, platform string) string {
	return path.Join(specsDir, "open-api3-"+version+"-"+string(AudienceFor(platform))+".json")
}

// ExamplePath returns the asset path of the snippet named demo. Both Android
// flavors share one directory with a language subfolder. demo is appended
// verbatim, so a name that is not already clean never matches a snippet.
func ExamplePath(version, platform, demo string) string {
	var dir string
	switch platform {
	case PlatformClientAndroidJava:
		dir = path.Join(examplesDir, version, "client-android", "java")
	case PlatformClientAndroidKotlin:
		dir = path.Join(examplesDir, version, "client-android", "kotlin")
	default:
		dir = path.Join(examplesDir, version, platform, "examples")
	}
	return dir + "/" + demo
}
