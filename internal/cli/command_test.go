package cli

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"
)

func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

var _ = Describe("Run", Label("run", "cmd"), func() {
	var root *cobra.Command
	var tmp string

	BeforeEach(func() {
		root = NewRootCmd()
		var err error
		tmp, err = os.MkdirTemp("", "valueiteration")
		Expect(err).To(BeNil())
	})
	AfterEach(func() {
		Expect(os.RemoveAll(tmp)).To(Succeed())
	})

	It("plans a tabular MDP with the file's settings", func() {
		_, output, err := executeCommandC(root, "run", "--no-color", "--mdp", "testdata/two-state.yaml")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring("two-state after 2 sweeps (discount 1)"))
		Expect(output).To(ContainSubstring("10.0000  go"))
		Expect(output).To(ContainSubstring("0.0000  -"))
	})
	It("lets flags override the file", Label("flags"), func() {
		_, output, err := executeCommandC(root, "run", "--no-color", "--mdp", "testdata/two-state.yaml", "--iterations", "0")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring("after 0 sweeps"))
		Expect(output).To(ContainSubstring("0.0000  go"))
	})
	It("reads defaults from a config file", Label("flags"), func() {
		_, output, err := executeCommandC(root, "run", "--config", "testdata/config.yaml", "--grid", "book")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring("book after 1 sweeps"))
	})
	It("prints grid values and the greedy policy", func() {
		_, output, err := executeCommandC(root, "run", "--no-color", "--grid", "book", "--qvalues")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring("book after 100 sweeps (discount 0.9)"))
		Expect(output).To(ContainSubstring("   0.85|   1.00|"))
		Expect(output).To(ContainSubstring("   >   |   >   |   >   |  exit |"))
		Expect(output).To(ContainSubstring("q-values"))
	})
	It("simulates greedy episodes", func() {
		_, output, err := executeCommandC(root, "run", "--no-color", "--grid", "bridge", "--noise", "0", "--episodes", "3", "--seed", "7")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring("episode 3:"))
		Expect(output).To(ContainSubstring("ended in TERMINAL_STATE"))
		Expect(output).To(ContainSubstring("average return"))
	})
	It("writes the chart and metrics files", func() {
		chart := filepath.Join(tmp, "charts", "book.html")
		prom := filepath.Join(tmp, "valueiteration.prom")
		_, _, err := executeCommandC(root, "run", "--grid", "book", "--iterations", "7", "--chart", chart, "--metrics-file", prom)
		Expect(err).To(BeNil())

		html, err := os.ReadFile(chart)
		Expect(err).To(BeNil())
		Expect(string(html)).To(ContainSubstring("echarts"))
		Expect(string(html)).To(ContainSubstring("bellman residual"))

		metrics, err := os.ReadFile(prom)
		Expect(err).To(BeNil())
		Expect(string(metrics)).To(ContainSubstring("valueiteration_sweeps_total 7"))
		Expect(string(metrics)).To(ContainSubstring("valueiteration_states 12"))
	})
	It("fails on conflicting sources", func() {
		_, _, err := executeCommandC(root, "run", "--grid", "book", "--mdp", "testdata/two-state.yaml")
		Expect(err).NotTo(BeNil())
		Expect(exitCode(err)).To(Equal(ExitBadInput))
	})
	It("reports invalid MDP files", func() {
		_, _, err := executeCommandC(root, "run", "--mdp", "testdata/broken.yaml")
		Expect(err).NotTo(BeNil())
		Expect(exitCode(err)).To(Equal(ExitBadInput))
		Expect(err.Error()).To(ContainSubstring(`undeclared state "Z"`))
	})
	It("rejects unknown grids and negative iterations", func() {
		_, _, err := executeCommandC(root, "run", "--grid", "nope")
		Expect(exitCode(err)).To(Equal(ExitBadInput))

		root = NewRootCmd()
		_, _, err = executeCommandC(root, "run", "--grid", "book", "--iterations", "-1")
		Expect(exitCode(err)).To(Equal(ExitBadInput))
	})
	It("fails when the chart cannot be written", func() {
		blocker := filepath.Join(tmp, "file")
		Expect(os.WriteFile(blocker, nil, 0o600)).To(Succeed())
		_, _, err := executeCommandC(root, "run", "--grid", "book", "--chart", filepath.Join(blocker, "chart.html"))
		Expect(exitCode(err)).To(Equal(ExitOutput))
	})
})

var _ = Describe("Inspect", Label("inspect", "cmd"), func() {
	var root *cobra.Command

	BeforeEach(func() {
		root = NewRootCmd()
	})

	It("lists grid transitions", func() {
		_, output, err := executeCommandC(root, "inspect", "--no-color", "--grid", "book")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring("book: 12 states, start \"2,0\""))
		Expect(output).To(ContainSubstring("TERMINAL_STATE (terminal)"))
		Expect(output).To(ContainSubstring("-> TERMINAL_STATE"))
	})
	It("dumps a decoded MDP file", Label("flags"), func() {
		_, output, err := executeCommandC(root, "inspect", "--mdp", "testdata/two-state.yaml", "--dump")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring(`Name: "two-state"`))
	})
})

var _ = Describe("Version", Label("version", "cmd"), func() {
	var root *cobra.Command

	BeforeEach(func() {
		root = NewRootCmd()
	})

	It("Reports the version", func() {
		_, output, err := executeCommandC(root, "version")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring(Version))
	})
	It("Reports the version in long format", Label("flags"), func() {
		_, output, err := executeCommandC(root, "version", "--long")
		Expect(err).To(BeNil())
		Expect(output).To(ContainSubstring(Version))
		Expect(output).To(ContainSubstring("GoVersion"))
	})
})
