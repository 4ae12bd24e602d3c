package cmdline

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"prepull/impl/config"

	"github.com/urfave/cli/v3"
)

// fromCmdline will be populated with flags indicating which configuration settings were
// specified on the command line.
var fromCmdline config.FromCmdLine

// cfg has the parsed configuration - including defaults (e.g. max attempts) if the user
// does not override
var cfg = config.Configuration{}

// imageFileFlag builds the flag shared by the pull and resolve sub-commands.
// Each command gets its own instance so parser state is never shared.
func imageFileFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "image-file",
		Usage:       "A YAML file listing the images to pull, either as a name-to-reference map or a list",
		Destination: &cfg.ImageFile,
		Validator: func(path string) error {
			if fi, err := os.Stat(path); err != nil {
				return fmt.Errorf("file not found")
			} else if fi.IsDir() {
				return fmt.Errorf("not a file")
			}
			return nil
		},
		Action: func(ctx context.Context, cmd *cli.Command, _ string) error {
			fromCmdline.ImageFile = true
			return nil
		},
	}
}

// cmds is for the command line parser urfave/cli
var cmds = &cli.Command{
	Name:  "prepull",
	Usage: "pulls listed images so they get cached and can be run without pulling later",
	// define this or the parser terminates the program
	ExitErrHandler: func(_ context.Context, _ *cli.Command, _ error) {},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Value:       "error",
			Usage:       "Sets the minimum value for logging: debug, warn, info, or error",
			Destination: &cfg.LogLevel,
			Validator: func(lvl string) error {
				validValues := []string{"debug", "warn", "info", "error"}
				if !slices.Contains(validValues, strings.ToLower(lvl)) {
					return fmt.Errorf("must be one of %s", strings.Join(validValues, ", "))
				}
				return nil
			},
			Action: func(ctx context.Context, cmd *cli.Command, _ string) error {
				fromCmdline.LogLevel = true
				return nil
			},
		},
		&cli.StringFlag{
			Name:        "log-file",
			Value:       "",
			Usage:       "log to the specified file rather than the console",
			Destination: &cfg.LogFile,
			Action: func(ctx context.Context, cmd *cli.Command, _ string) error {
				fromCmdline.LogFile = true
				return nil
			},
		},
		&cli.StringFlag{
			Name:        "config-file",
			Usage:       "A file to load configuration values from (cmdline overrides file settings)",
			Destination: &cfg.ConfigFile,
			Validator: func(path string) error {
				if fi, err := os.Stat(path); err != nil {
					return fmt.Errorf("file not found")
				} else if fi.IsDir() {
					return fmt.Errorf("not a file")
				}
				return nil
			},
			Action: func(ctx context.Context, cmd *cli.Command, _ string) error {
				fromCmdline.ConfigFile = true
				return nil
			},
		},
	},
	Commands: []*cli.Command{
		{
			Name:  "pull",
			Usage: "Pulls every listed image, retrying failures",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				fromCmdline.Command = "pull"
				return nil
			},
			Flags: []cli.Flag{
				imageFileFlag(),
				&cli.IntFlag{
					Name:        "max-attempts",
					Value:       3,
					Usage:       "Maximum number of times to attempt pulling each image",
					Destination: &cfg.MaxAttempts,
					Validator: func(attempts int64) error {
						if attempts < 1 {
							return fmt.Errorf("must be at least 1")
						}
						return nil
					},
					Action: func(ctx context.Context, cmd *cli.Command, _ int64) error {
						fromCmdline.MaxAttempts = true
						return nil
					},
				},
				&cli.StringFlag{
					Name:        "prefix",
					Value:       "docker://",
					Usage:       "Prefix for the image url",
					Destination: &cfg.Prefix,
					Action: func(ctx context.Context, cmd *cli.Command, _ string) error {
						fromCmdline.Prefix = true
						return nil
					},
				},
				&cli.BoolFlag{
					Name:        "stop-on-failure",
					Value:       false,
					Usage:       "Stop at the first image that fails; by default all images are attempted even if one fails",
					Destination: &cfg.StopOnFailure,
					Action: func(ctx context.Context, cmd *cli.Command, _ bool) error {
						fromCmdline.StopOnFailure = true
						return nil
					},
				},
				&cli.BoolFlag{
					Name:        "show-output-on-failure",
					Value:       false,
					Usage:       "Print the stderr and stdout of every attempt when pulling an image fails",
					Destination: &cfg.ShowOutputOnFailure,
					Action: func(ctx context.Context, cmd *cli.Command, _ bool) error {
						fromCmdline.ShowOutputOnFailure = true
						return nil
					},
				},
				&cli.BoolFlag{
					Name:        "show-output-on-success",
					Value:       false,
					Usage:       "Print the stderr and stdout of every attempt when pulling an image succeeds",
					Destination: &cfg.ShowOutputOnSuccess,
					Action: func(ctx context.Context, cmd *cli.Command, _ bool) error {
						fromCmdline.ShowOutputOnSuccess = true
						return nil
					},
				},
				&cli.StringFlag{
					Name:        "singularity-exe",
					Value:       "singularity",
					Usage:       "The command for running singularity",
					Destination: &cfg.SingularityExe,
					Action: func(ctx context.Context, cmd *cli.Command, _ string) error {
						fromCmdline.SingularityExe = true
						return nil
					},
				},
				&cli.BoolFlag{
					Name:        "use-digest",
					Value:       false,
					Usage:       "Retrieve the image digests from dockerhub or quay.io and pull by digest instead of by tag. Only usable with docker images",
					Destination: &cfg.UseDigest,
					Action: func(ctx context.Context, cmd *cli.Command, _ bool) error {
						fromCmdline.UseDigest = true
						return nil
					},
				},
			},
		},
		{
			Name:  "resolve",
			Usage: "Resolves every listed image reference to its digest-qualified form and prints it",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				fromCmdline.Command = "resolve"
				return nil
			},
			Flags: []cli.Flag{
				imageFileFlag(),
			},
		},
		{
			Name:  "version",
			Usage: "Displays the version",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				fromCmdline.Command = "version"
				return nil
			},
		},
	},
}

// Parse parses the command line. It returns the following:
//
//  1. A FromCmdLine struct which has the command to run ("pull", "resolve", etc.). If the
//     command is the empty string then no sub-command was specified in which case the parser
//     auto-displays help. This struct also has flags telling you which configuration values
//     were provided by the user on the command line.
//  2. A Configuration struct containing the parsed configuration values. For any configuration
//     flag in the FromCmdLine struct with a false value, the corresponding configuration value
//     in *this* struct will be the default.
//  3. An error, if the parser returned one, else nil.
func Parse() (config.FromCmdLine, config.Configuration, error) {
	if err := cmds.Run(context.Background(), os.Args); err != nil {
		return config.FromCmdLine{}, config.Configuration{}, err
	}
	return fromCmdline, cfg, nil
}

// ClearParse supports unit testing
func ClearParse() {
	fromCmdline = config.FromCmdLine{}
	cfg = config.Configuration{}
}
