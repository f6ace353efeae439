package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"flexgen/internal/ai"
	"flexgen/internal/pkg/flextools"
	"flexgen/internal/service"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single post and print it",
	Long: `Run the generation pipeline once and print the post text to stdout.

With --prompt the freeform (playground) mode is used and only
--platform and --tone are read from the other flags.`,
	Example: `  flexgen generate --platform linkedin --tone "Growth Bro" --arrogance 8 --buzzwords 6 --fake-metrics 9 --mrr 10k
  flexgen generate --prompt "brag about inbox zero"`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.String("platform", "", "target platform (linkedin/x/instagram)")
	flags.String("tone", "", `tone (Humblebrag/"Growth Bro"/Survivor/"Stoic Monk CEO")`)
	flags.Int("arrogance", 5, "arrogance slider")
	flags.Int("buzzwords", 5, "buzzwords slider")
	flags.Int("fake-metrics", 5, "fake metrics slider")
	flags.String("niche", "", "industry or niche (optional)")
	flags.String("tools", "", "tools to name-drop (optional)")
	flags.String("mrr", "", "vanity MRR figure (optional)")
	flags.String("followers", "", "vanity follower count (optional)")
	flags.Int("spice", 0, "extra spice level 0-10 (optional)")
	flags.String("prompt", "", "freeform instruction, switches to playground mode")

	// 只对本次运行生效，不绑定 viper，避免与 serve 的同名 key 冲突
	flags.String("model", "", "override ai.model for this run")
	flags.Duration("timeout", 0, "override ai.timeout for this run")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	flags := cmd.Flags()

	if model, _ := flags.GetString("model"); model != "" {
		cfg.AI.Model = model
	}
	if timeout, _ := flags.GetDuration("timeout"); timeout > 0 {
		cfg.AI.Timeout = timeout
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.AI.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.AI.Timeout)
		defer cancel()
	}

	completer, configErr := ai.NewCompleter(ctx, &cfg.AI)
	svc := service.NewFlexService(completer, configErr, flextools.NewValidator(cfg.Generation.SliderMax))

	start := time.Now()
	var (
		post flextools.GeneratedPost
		err  error
	)
	if flags.Changed("prompt") {
		post, err = svc.Freeform(ctx, freeformPayload(cmd))
	} else {
		post, err = svc.Generate(ctx, generatePayload(cmd))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", flextools.ReasonOf(err), err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), post.Text)
	log.Debug().Dur("latency", time.Since(start)).Str("platform", post.Platform.String()).Msg("post generated")
	return nil
}

// generatePayload 把 flag 转成与 HTTP 请求体相同的宽松 payload，未设置的可选项不出现
func generatePayload(cmd *cobra.Command) map[string]any {
	flags := cmd.Flags()
	payload := make(map[string]any)

	for flag, key := range map[string]string{"platform": "platform", "tone": "tone"} {
		if v, _ := flags.GetString(flag); v != "" {
			payload[key] = v
		}
	}
	for flag, key := range map[string]string{"arrogance": "arrogance", "buzzwords": "buzzwords", "fake-metrics": "fakeMetrics"} {
		v, _ := flags.GetInt(flag)
		payload[key] = float64(v)
	}
	for _, key := range []string{"niche", "tools", "mrr", "followers"} {
		if flags.Changed(key) {
			v, _ := flags.GetString(key)
			payload[key] = v
		}
	}
	if flags.Changed("spice") {
		v, _ := flags.GetInt("spice")
		payload["spiceLevel"] = float64(v)
	}
	return payload
}

func freeformPayload(cmd *cobra.Command) map[string]any {
	flags := cmd.Flags()
	prompt, _ := flags.GetString("prompt")
	payload := map[string]any{"prompt": prompt}
	if v, _ := flags.GetString("platform"); v != "" {
		payload["platform"] = v
	}
	if v, _ := flags.GetString("tone"); v != "" {
		payload["tone"] = v
	}
	return payload
}
