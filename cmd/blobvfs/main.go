// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/deptofdefense/blobvfs/pkg/blob/memblob"
	"github.com/deptofdefense/blobvfs/pkg/blob/minioblob"
	"github.com/deptofdefense/blobvfs/pkg/blob/s3blob"
	"github.com/deptofdefense/blobvfs/pkg/blobfs"
	"github.com/deptofdefense/blobvfs/pkg/lfs"
	"github.com/deptofdefense/blobvfs/pkg/log"
	"github.com/deptofdefense/blobvfs/pkg/vfs"
)

const (
	BlobvfsVersion = "1.0.0"
)

const (
	SchemeS3    = "s3"
	SchemeMinio = "minio"
	SchemeMem   = "mem"
	SchemeFile  = "file"
)

const (
	flagLogPath = "log"
	flagLogPerm = "log-perm"

	flagUploadBlockSize       = "upload-block-size"
	flagSingleUploadBlockSize = "single-upload-block-size"
	flagParallelUploadThreads = "parallel-upload-threads"
	flagVerbose               = "verbose"

	flagAccountName = "account-name"
	flagAccountKey  = "account-key"

	flagS3Region             = "s3-region"
	flagS3UsePathStyle       = "s3-use-path-style"
	flagS3Insecure           = "s3-insecure"
	flagS3InsecureSkipVerify = "s3-insecure-skip-verify"

	flagMinioUseSSL = "minio-use-ssl"
	flagMinioRegion = "minio-region"

	flagLocalRoot = "local-root"

	flagRecursive = "recursive"
	flagAppend    = "append"
)

func initFlags(flag *pflag.FlagSet) {
	flag.StringP(flagLogPath, "l", "-", "path to the log output.  Defaults to stdout.")
	flag.String(flagLogPerm, "0600", "file permissions for log output file as unix file mode.")
	flag.Int(flagUploadBlockSize, blobfs.DefaultBlockSizeMB, "block size in megabytes used when uploading blobs")
	flag.Int(flagSingleUploadBlockSize, 0, "maximum size in megabytes uploaded in a single request.  Defaults to the block size.")
	flag.Int(flagParallelUploadThreads, blobfs.DefaultParallelism, "number of blocks uploaded in parallel")
	flag.BoolP(flagVerbose, "v", false, "log every remote operation")
	flag.String(flagAccountName, "", "account name used for blob stores.  Overrides the user in the uri.")
	flag.String(flagAccountKey, "", "account key used for blob stores.  Overrides the password in the uri.")
	flag.String(flagS3Region, "", "AWS Region")
	flag.Bool(flagS3UsePathStyle, false, "Use path-style addressing (default is to use virtual-host-style addressing)")
	flag.Bool(flagS3Insecure, false, "connect to S3-compatible hosts over http")
	flag.Bool(flagS3InsecureSkipVerify, false, "Skip verification of AWS TLS certificate")
	flag.Bool(flagMinioUseSSL, true, "connect to MinIO hosts over https")
	flag.String(flagMinioRegion, "", "MinIO Region")
	flag.String(flagLocalRoot, "", "restrict file uris to the given local directory")
}

func initViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	err := v.BindPFlags(cmd.Flags())
	if err != nil {
		return v, fmt.Errorf("error binding flag set to viper: %w", err)
	}
	v.SetEnvPrefix("blobvfs")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // set environment variables to overwrite config
	return v, nil
}

func initConfig(v *viper.Viper) *blobfs.Config {
	return &blobfs.Config{
		BlockSizeMB:          v.GetInt(flagUploadBlockSize),
		SinglePutThresholdMB: v.GetInt(flagSingleUploadBlockSize),
		Parallelism:          v.GetInt(flagParallelUploadThreads),
		Verbose:              v.GetBool(flagVerbose),
	}
}

func checkConfig(v *viper.Viper) error {
	logPath := v.GetString(flagLogPath)
	if len(logPath) == 0 {
		return fmt.Errorf("log path is missing")
	}
	logPerm := v.GetString(flagLogPerm)
	if len(logPerm) == 0 {
		return fmt.Errorf("log perm is missing")
	}
	_, err := strconv.ParseUint(logPerm, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid format for log perm: %s", logPerm)
	}
	if err := initConfig(v).Validate(); err != nil {
		return fmt.Errorf("invalid upload configuration: %w", err)
	}
	return nil
}

func newTraceID() string {
	traceID, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return traceID.String()
}

func initLogger(path string, perm string) (*log.SimpleLogger, error) {

	if path == "-" {
		return log.NewSimpleLogger(os.Stdout), nil
	}

	fileMode := os.FileMode(0600)

	if len(perm) > 0 {
		fm, err := strconv.ParseUint(perm, 8, 32)
		if err != nil {
			return nil, fmt.Errorf("error parsing file permissions for log file from %q", perm)
		}
		fileMode = os.FileMode(fm)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, fmt.Errorf("error opening log file %q: %w", path, err)
	}

	return log.NewSimpleLogger(f), nil
}

func initAuthenticator(v *viper.Viper) vfs.UserAuthenticator {
	accountName := v.GetString(flagAccountName)
	accountKey := v.GetString(flagAccountKey)
	if len(accountName) == 0 && len(accountKey) == 0 {
		return nil
	}
	return &vfs.StaticUserAuthenticator{
		UserName: accountName,
		Password: accountKey,
	}
}

func initLocalFileSystem(v *viper.Viper) afero.Fs {
	if localRoot := v.GetString(flagLocalRoot); len(localRoot) > 0 {
		return afero.NewBasePathFs(afero.NewOsFs(), localRoot)
	}
	return afero.NewOsFs()
}

func initManager(v *viper.Viper, logger *log.SimpleLogger) (*vfs.Manager, error) {
	config := initConfig(v)

	manager := vfs.NewManager(&vfs.FileSystemOptions{
		Authenticator: initAuthenticator(v),
	})

	s3Provider, err := blobfs.NewBlobFileProvider(&s3blob.Factory{
		Region:             v.GetString(flagS3Region),
		UsePathStyle:       v.GetBool(flagS3UsePathStyle),
		Insecure:           v.GetBool(flagS3Insecure),
		InsecureSkipVerify: v.GetBool(flagS3InsecureSkipVerify),
		Logger:             logger,
	}, config, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating s3 provider: %w", err)
	}
	manager.AddProvider(SchemeS3, s3Provider)

	minioProvider, err := blobfs.NewBlobFileProvider(&minioblob.Factory{
		UseSSL: v.GetBool(flagMinioUseSSL),
		Region: v.GetString(flagMinioRegion),
		Logger: logger,
	}, config, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating minio provider: %w", err)
	}
	manager.AddProvider(SchemeMinio, minioProvider)

	memFactory := memblob.NewFactory(logger)
	memFactory.CreateStores = true
	memProvider, err := blobfs.NewBlobFileProvider(memFactory, config, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating mem provider: %w", err)
	}
	manager.AddProvider(SchemeMem, memProvider)

	manager.AddProvider(SchemeFile, lfs.NewLocalFileProvider(initLocalFileSystem(v)))

	return manager, nil
}

type commandFunc func(ctx context.Context, v *viper.Viper, manager *vfs.Manager, logger *log.SimpleLogger, args []string) error

// runCommand returns a cobra RunE function that sets up the logger and manager, then runs f.
func runCommand(minArgs int, maxArgs int, f commandFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		v, err := initViper(cmd)
		if err != nil {
			return fmt.Errorf("error initializing viper: %w", err)
		}

		if len(args) < minArgs || (maxArgs >= 0 && len(args) > maxArgs) {
			return cmd.Usage()
		}

		if errConfig := checkConfig(v); errConfig != nil {
			return errConfig
		}

		logger, err := initLogger(v.GetString(flagLogPath), v.GetString(flagLogPerm))
		if err != nil {
			return fmt.Errorf("error initializing logger: %w", err)
		}
		defer func() {
			_ = logger.Sync()
		}()

		manager, err := initManager(v, logger)
		if err != nil {
			return fmt.Errorf("error initializing file system manager: %w", err)
		}
		defer func() {
			if errClose := manager.Close(); errClose != nil {
				_ = logger.Log("Error closing file systems", map[string]interface{}{
					"error": errClose,
				})
			}
		}()

		traceID := newTraceID()

		if v.GetBool(flagVerbose) {
			_ = logger.Log("Running command", map[string]interface{}{
				"command": cmd.Name(),
				"args":    args,
				"traceID": traceID,
			})
		}

		if err := f(ctx, v, manager, logger, args); err != nil {
			_ = logger.Log("Command failed", map[string]interface{}{
				"command": cmd.Name(),
				"args":    args,
				"traceID": traceID,
				"error":   err,
			})
			return err
		}
		return nil
	}
}

func newCommand(use string, short string, minArgs int, maxArgs int, f commandFunc) *cobra.Command {
	return &cobra.Command{
		Use:                   use,
		DisableFlagsInUseLine: true,
		Short:                 short,
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE:                  runCommand(minArgs, maxArgs, f),
	}
}

func main() {

	rootCommand := &cobra.Command{
		Use:                   `blobvfs [flags]`,
		DisableFlagsInUseLine: true,
		Short:                 "blobvfs browses blob stores as a file system.",
	}
	initFlags(rootCommand.PersistentFlags())

	lsCommand := newCommand(`ls [-R] URI`, "list a folder", 1, 1, func(ctx context.Context, v *viper.Viper, manager *vfs.Manager, logger *log.SimpleLogger, args []string) error {
		f, err := manager.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return listFiles(ctx, os.Stdout, f, v.GetBool(flagRecursive))
	})
	lsCommand.Flags().BoolP(flagRecursive, "R", false, "list descendants")

	catCommand := newCommand(`cat URI`, "print the content of a file", 1, 1, func(ctx context.Context, v *viper.Viper, manager *vfs.Manager, logger *log.SimpleLogger, args []string) error {
		f, err := manager.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return catFile(ctx, os.Stdout, f)
	})

	cpCommand := newCommand(`cp SOURCE DESTINATION`, "copy a file or folder", 2, 2, func(ctx context.Context, v *viper.Viper, manager *vfs.Manager, logger *log.SimpleLogger, args []string) error {
		src, err := manager.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		defer src.Close()
		dst, err := manager.Resolve(ctx, args[1])
		if err != nil {
			return err
		}
		defer dst.Close()
		return copyFile(ctx, src, dst)
	})

	rmCommand := newCommand(`rm [-r] URI`, "delete a file or folder", 1, 1, func(ctx context.Context, v *viper.Viper, manager *vfs.Manager, logger *log.SimpleLogger, args []string) error {
		f, err := manager.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		count, err := removeFile(ctx, f, v.GetBool(flagRecursive))
		if err != nil {
			return err
		}
		fmt.Printf("deleted %d files\n", count)
		return nil
	})
	rmCommand.Flags().BoolP(flagRecursive, "r", false, "delete descendants")

	mkdirCommand := newCommand(`mkdir URI`, "create a folder", 1, 1, func(ctx context.Context, v *viper.Viper, manager *vfs.Manager, logger *log.SimpleLogger, args []string) error {
		f, err := manager.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return f.CreateFolder(ctx)
	})

	touchCommand := newCommand(`touch URI`, "create an empty file if it does not exist", 1, 1, func(ctx context.Context, v *viper.Viper, manager *vfs.Manager, logger *log.SimpleLogger, args []string) error {
		f, err := manager.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return touchFile(ctx, f)
	})

	statCommand := newCommand(`stat URI`, "show the type, size, and last modified time of a file", 1, 1, func(ctx context.Context, v *viper.Viper, manager *vfs.Manager, logger *log.SimpleLogger, args []string) error {
		f, err := manager.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return statFile(ctx, os.Stdout, f)
	})

	putCommand := newCommand(`put [--append] URI`, "write standard input to a file", 1, 1, func(ctx context.Context, v *viper.Viper, manager *vfs.Manager, logger *log.SimpleLogger, args []string) error {
		f, err := manager.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return putFile(ctx, f, os.Stdin, v.GetBool(flagAppend))
	})
	putCommand.Flags().Bool(flagAppend, false, "append to the existing content")

	shellCommand := newCommand(`shell URI`, "start an interactive shell in a folder", 1, 1, func(ctx context.Context, v *viper.Viper, manager *vfs.Manager, logger *log.SimpleLogger, args []string) error {
		cwd, err := manager.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		return NewShell(manager, logger, cwd, os.Stdout).Run(ctx, os.Stdin)
	})
	shellCommand.Example = `shell mem://account/container
shell --account-name AKIA... --account-key ... s3://s3.us-east-1.amazonaws.com/bucket/prefix`

	versionCommand := &cobra.Command{
		Use:                   `version`,
		DisableFlagsInUseLine: true,
		Short:                 "show version",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(BlobvfsVersion)
			return nil
		},
	}

	rootCommand.AddCommand(
		lsCommand,
		catCommand,
		cpCommand,
		rmCommand,
		mkdirCommand,
		touchCommand,
		statCommand,
		putCommand,
		shellCommand,
		versionCommand,
	)

	if err := rootCommand.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "blobvfs: "+err.Error())
		_, _ = fmt.Fprintln(os.Stderr, "Try blobvfs --help for more information.")
		os.Exit(1)
	}
}
