package backend

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// LinkerDriver shells out to the system `cc` to turn a set of emitted IR
// files into the final executable (spec.md §6: "the driver composes a
// single command line: cc <ir-files>... -o <output> -L<path>...
// -l<lib>... <extra>"). Grounded on the external-process invocation
// style of eval_harness.PythonRunner.Run — CommandContext plus captured
// stdout/stderr — generalized to the one place this pipeline shells out.
type LinkerDriver struct {
	// CC overrides the linker-driver binary; empty means "cc".
	CC  string
	Log *logrus.Logger
}

// NewLinkerDriver returns a driver using the system `cc` and a
// default-configured logger.
func NewLinkerDriver() *LinkerDriver {
	return &LinkerDriver{CC: "cc", Log: logrus.StandardLogger()}
}

// Link invokes the linker-driver. libPaths/libs come from -L and the set
// union of every resolved module's extern-block library annotations
// (spec.md §6); extra is appended verbatim after everything else. On
// failure the returned error wraps the command's error (an
// *exec.ExitError when the driver ran and exited non-zero, retrievable
// with errors.As) together with the captured stderr.
func (d *LinkerDriver) Link(ctx context.Context, irFiles []string, output string, libPaths, libs, extra []string) error {
	cc := d.CC
	if cc == "" {
		cc = "cc"
	}

	args := append([]string{}, irFiles...)
	args = append(args, "-o", output)
	for _, p := range libPaths {
		args = append(args, "-L"+p)
	}
	for _, l := range libs {
		args = append(args, "-l"+l)
	}
	args = append(args, extra...)

	cmd := exec.CommandContext(ctx, cc, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if d.Log != nil {
		d.Log.WithField("args", args).Debug("invoking linker-driver")
	}
	if err := cmd.Run(); err != nil {
		if d.Log != nil {
			d.Log.WithError(err).WithField("stderr", stderr.String()).Error("linker-driver failed")
		}
		return fmt.Errorf("linker-driver %s failed: %w: %s", cc, err, stderr.String())
	}
	return nil
}
