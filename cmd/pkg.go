/*
Prepull warms a singularity image cache by pulling every image listed in a
YAML file via the external singularity executable, so that compute nodes
sharing the cache don't race to pull the same images at job startup.

Usage:

	prepull [global flags] <command> [command flags]

Commands:

	pull
		Pulls every listed image, retrying failures up to --max-attempts
		times per image. Exits zero only if every image was pulled.
	resolve
		Resolves every listed tag reference to its digest-qualified form
		using the Docker Hub / Quay registry APIs and prints it.
	version
		Displays the version.

Command flags (pull):

	--image-file string
		A YAML file listing the images to pull: either a mapping of name to
		reference, or a list of bare references.
	--max-attempts int
		Maximum number of times to attempt pulling each image. Defaults to 3.
	--prefix string
		Prefix for the image url. Defaults to 'docker://'.
	--stop-on-failure
		Stop at the first image that fails.
	--show-output-on-failure
		Print the captured stderr and stdout when pulling an image fails.
	--show-output-on-success
		Print the captured stderr and stdout when pulling an image succeeds.
	--singularity-exe string
		The command for running singularity. Defaults to 'singularity'.
	--use-digest
		Pull by registry digest instead of by tag. Only usable with the
		'docker://' prefix.

Global flags:

	--log-level string
		Log level: debug, warn, info, or error. Defaults to 'error'.
	--log-file string
		Log to the specified file rather than the console.
	--config-file string
		A YAML file to load configuration values from (cmdline overrides
		file settings).
*/
package main
